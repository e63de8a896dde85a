package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/whoosh/internal/model"
)

func TestGetProfile(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointMe, http.StatusOK, map[string]any{
		"id":           3,
		"username":     "bob",
		"email":        "bob@example.com",
		"display_name": "Bobby",
		"elo":          1234,
		"xp":           50,
		"total_games":  4,
		"wins":         3,
		"is_guest":     false,
		"created_at":   "2024-01-01T12:00:00.123456Z",
	})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	profile, err := c.GetProfile(ctx)
	require.NoError(t, err)

	assert.Equal(t, "bob", profile.Username)
	assert.Equal(t, "Bobby", profile.DisplayName)
	assert.Equal(t, 1234, profile.Elo)
	assert.Equal(t, 4, profile.TotalGames)
	assert.Equal(t, 3, profile.Wins)
	require.NotNil(t, profile.CreatedAt)
	assert.Equal(t, 2024, profile.CreatedAt.Year())
}

func TestGetProfileMissingFieldsAreZero(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointMe, http.StatusOK, map[string]any{"username": "guest_1", "is_guest": true})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	profile, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Elo)
	assert.Equal(t, 0, profile.XP)
	assert.True(t, profile.IsGuest)
}

func TestGetProfileFailureUsesFixedMessage(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusForbidden} {
		api := newFakeAPI(t)
		api.respond(http.MethodGet, EndpointMe, status, map[string]string{"error": "database exploded", "detail": "nope"})
		c, store := api.newClient()
		ctx := context.Background()
		_ = store.Set(ctx, "A1", "R1")

		_, err := c.GetProfile(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrProfileFetch)
		assert.Equal(t, "Failed to fetch profile", err.Error())
	}
}

func TestUpdateProfileSendsOnlySetFields(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodPatch, EndpointMe, http.StatusOK, map[string]any{"username": "bob", "display_name": "Bobby"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	name := "Bobby"
	profile, err := c.UpdateProfile(ctx, model.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bobby", profile.DisplayName)

	calls := api.calls(EndpointMe)
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPatch, calls[0].Method)
	assert.JSONEq(t, `{"display_name":"Bobby"}`, string(calls[0].Body))
	assert.Equal(t, "Bearer A1", calls[0].Authorization)
}

func TestUpdateProfileErrors(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodPatch, EndpointMe, http.StatusBadRequest, map[string]any{"email": []string{"Enter a valid email address."}})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	email := "not-an-email"
	_, err := c.UpdateProfile(ctx, model.ProfileUpdate{Email: &email})
	require.Error(t, err)
	assert.Equal(t, "Failed to update profile", err.Error())
}
