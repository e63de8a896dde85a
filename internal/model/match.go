package model

import "time"

// MatchSummary is one entry of the current user's match history
type MatchSummary struct {
	MatchID   string     `json:"match_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	EloBefore int        `json:"elo_before"`
	EloAfter  int        `json:"elo_after"`
	XPGained  int        `json:"xp_gained"`
	IsWinner  bool       `json:"is_winner"`
}

// EloDelta returns the rating change of the match
func (m MatchSummary) EloDelta() int {
	return m.EloAfter - m.EloBefore
}

// DefaultQueue is the matchmaking queue used when none is given
const DefaultQueue = "standard"

// QueueTicket is returned when joining the matchmaking queue
type QueueTicket struct {
	Message string `json:"message"`
	Queue   string `json:"queue"`
	UserID  string `json:"user_id"`
}

// Health is the backend health check result
type Health struct {
	Status string `json:"status"`
}

// Match is a completed game as recorded by the backend
type Match struct {
	ID           string             `json:"id"`
	StartedAt    time.Time          `json:"started_at"`
	EndedAt      *time.Time         `json:"ended_at,omitempty"`
	WinnerID     UserID             `json:"winner_id,omitempty"`
	Participants []MatchParticipant `json:"participants"`
}

// MatchParticipant is one player's outcome of a match
type MatchParticipant struct {
	UserID    UserID `json:"user_id"`
	EloBefore int    `json:"elo_before"`
	EloAfter  int    `json:"elo_after"`
	XPGained  int    `json:"xp_gained"`
	IsWinner  bool   `json:"is_winner"`
}

// Summary returns the match as seen by one participant
func (m *Match) Summary(userID UserID) (MatchSummary, bool) {
	for _, p := range m.Participants {
		if p.UserID != userID {
			continue
		}
		return MatchSummary{
			MatchID:   m.ID,
			StartedAt: m.StartedAt,
			EndedAt:   m.EndedAt,
			EloBefore: p.EloBefore,
			EloAfter:  p.EloAfter,
			XPGained:  p.XPGained,
			IsWinner:  p.IsWinner,
		}, true
	}
	return MatchSummary{}, false
}
