package memory

import (
	"context"
	"sync"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]model.User
	usernameIndex map[string]model.UserID
	emailIndex    map[string]model.UserID
	matches       map[string]*model.Match
	userMatches   map[model.UserID][]string
	queues        map[string][]model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]model.User),
		usernameIndex: make(map[string]model.UserID),
		emailIndex:    make(map[string]model.UserID),
		matches:       make(map[string]*model.Match),
		userMatches:   make(map[model.UserID][]string),
		queues:        make(map[string][]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.users[user.ID]; ok {
		if prev.Username != user.Username {
			delete(s.usernameIndex, prev.Username)
		}
		if prev.Email != user.Email {
			delete(s.emailIndex, prev.Email)
		}
	}

	s.users[user.ID] = *user
	s.usernameIndex[user.Username] = user.ID
	if user.Email != "" {
		s.emailIndex[user.Email] = user.ID
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getUser(id)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.getUser(id)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.getUser(id)
}

func (s *Storage) getUser(id model.UserID) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.matches[match.ID]
	stored := *match
	stored.Participants = append([]model.MatchParticipant(nil), match.Participants...)
	s.matches[match.ID] = &stored

	if !existed {
		for _, p := range match.Participants {
			s.userMatches[p.UserID] = append(s.userMatches[p.UserID], match.ID)
		}
	}
	return nil
}

func (s *Storage) ListMatchesForUser(ctx context.Context, id model.UserID, limit int) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.userMatches[id]
	result := make([]*model.Match, 0, min(len(ids), limit))
	for i := len(ids) - 1; i >= 0 && len(result) < limit; i-- {
		m := *s.matches[ids[i]]
		result = append(result, &m)
	}
	return result, nil
}

// Matchmaking queue operations

func (s *Storage) Enqueue(ctx context.Context, queue string, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[queue] = append(s.queues[queue], id)
	return nil
}

func (s *Storage) QueueLength(ctx context.Context, queue string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.queues[queue])), nil
}
