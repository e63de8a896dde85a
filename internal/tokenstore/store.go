package tokenstore

import (
	"context"

	"github.com/mcoot/whoosh/internal/model"
)

// Store persists the client's token pair under the fixed keys
// model.AccessTokenKey and model.RefreshTokenKey.
// Tokens are opaque; an empty value is stored as absent.
type Store interface {
	// Get reads both tokens. Either may be empty.
	Get(ctx context.Context) (model.TokenPair, error)
	// Set overwrites both tokens.
	Set(ctx context.Context, access, refresh string) error
	// Clear removes both tokens.
	Clear(ctx context.Context) error
}
