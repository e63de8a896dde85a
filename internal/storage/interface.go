package storage

import (
	"context"

	"github.com/mcoot/whoosh/internal/model"
)

// MatchHistoryLimit caps the number of matches returned for a user
const MatchHistoryLimit = 20

// Storage defines the interface for backend persistence
type Storage interface {
	// User operations. SaveUser keeps the username and email indexes in step
	// with the saved record, including renames.
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Match operations. Matches are listed newest first.
	SaveMatch(ctx context.Context, match *model.Match) error
	ListMatchesForUser(ctx context.Context, id model.UserID, limit int) ([]*model.Match, error)

	// Matchmaking queue operations
	Enqueue(ctx context.Context, queue string, id model.UserID) error
	QueueLength(ctx context.Context, queue string) (int64, error)
}
