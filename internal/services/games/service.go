package games

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/whoosh/internal/dependencies/clock"
	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/storage"
)

// ErrInvalidResult is returned for a result without participants
var ErrInvalidResult = errors.New("invalid game result")

// Service records match results, serves match history and queues players
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new games Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// History returns the user's most recent matches, newest first
func (s *Service) History(ctx context.Context, id model.UserID) ([]model.MatchSummary, error) {
	matches, err := s.storage.ListMatchesForUser(ctx, id, storage.MatchHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]model.MatchSummary, 0, len(matches))
	for _, m := range matches {
		if summary, ok := m.Summary(id); ok {
			history = append(history, summary)
		}
	}
	return history, nil
}

// RecordResult stores a finished match and applies each known participant's
// rating, XP and win counters. Unknown participants are skipped.
func (s *Service) RecordResult(ctx context.Context, match *model.Match) (*model.Match, error) {
	if len(match.Participants) == 0 {
		return nil, ErrInvalidResult
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	now := s.clock.Now()
	if match.StartedAt.IsZero() {
		match.StartedAt = now
	}
	if match.EndedAt == nil {
		match.EndedAt = &now
	}

	recorded := make([]model.MatchParticipant, 0, len(match.Participants))
	for _, p := range match.Participants {
		user, err := s.storage.GetUser(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				s.logger.Warn("skipping unknown participant", slog.String("user_id", string(p.UserID)))
				continue
			}
			return nil, err
		}

		user.Elo = p.EloAfter
		user.XP += p.XPGained
		user.TotalGames++
		if p.IsWinner {
			user.Wins++
			match.WinnerID = user.ID
		}
		user.UpdatedAt = now
		if err := s.storage.SaveUser(ctx, user); err != nil {
			return nil, err
		}
		recorded = append(recorded, p)
	}
	match.Participants = recorded

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match recorded", slog.String("match_id", match.ID), slog.Int("participants", len(recorded)))
	return match, nil
}

// JoinQueue adds the user to a matchmaking queue, the default one when queue is empty
func (s *Service) JoinQueue(ctx context.Context, id model.UserID, queue string) (*model.QueueTicket, error) {
	if queue == "" {
		queue = model.DefaultQueue
	}
	if err := s.storage.Enqueue(ctx, queue, id); err != nil {
		return nil, err
	}

	return &model.QueueTicket{
		Message: "Added to matchmaking queue",
		Queue:   queue,
		UserID:  string(id),
	}, nil
}
