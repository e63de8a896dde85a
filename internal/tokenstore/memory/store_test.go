package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/whoosh/internal/model"
)

func TestSetThenGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "b"))

	tokens, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "a", RefreshToken: "b"}, tokens)
}

func TestClearRemovesBoth(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Set(ctx, "a", "b")

	require.NoError(t, s.Clear(ctx))

	tokens, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken)
	assert.False(t, tokens.HasAccess())
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Set(ctx, "a1", "r1")
	_ = s.Set(ctx, "a2", "r2")

	tokens, _ := s.Get(ctx)
	assert.Equal(t, "a2", tokens.AccessToken)
	assert.Equal(t, "r2", tokens.RefreshToken)
}

func TestGetEmptyStore(t *testing.T) {
	tokens, err := New().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{}, tokens)
}
