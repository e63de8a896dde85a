package client

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/tokenstore/memory"
)

func TestClaimsDecodesStoredToken(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID:    "u-1",
		Username:  "bob",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	store := memory.New()
	ctx := context.Background()
	_ = store.Set(ctx, signed, "R1")
	c := New(store, DefaultConfig())

	claims, err := c.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, 5*time.Minute, claims.ExpiresIn(now))
	assert.Equal(t, time.Duration(0), claims.ExpiresIn(now.Add(time.Hour)))
}

func TestClaimsWithoutSession(t *testing.T) {
	c := New(memory.New(), DefaultConfig())

	_, err := c.Claims(context.Background())
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestClaimsOpaqueToken(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	_ = store.Set(ctx, "opaque", "R1")
	c := New(store, DefaultConfig())

	_, err := c.Claims(ctx)
	assert.Error(t, err)
}
