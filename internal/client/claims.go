package client

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/whoosh/internal/model"
)

// AccessClaims are the claims the backend puts in access tokens
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// ExpiresIn returns the time left before the token expires, or zero when it
// has no expiry or already expired
func (c *AccessClaims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	left := c.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Claims decodes the stored access token without verifying its signature.
// It is for display only; the server remains the judge of validity.
func (c *Client) Claims(ctx context.Context) (*AccessClaims, error) {
	tokens, err := c.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !tokens.HasAccess() {
		return nil, model.ErrNotAuthenticated
	}

	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokens.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}
	return claims, nil
}
