package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
)

// GetProfile fetches the current user's profile.
// Any non-success status yields model.ErrProfileFetch regardless of the body.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		discard(resp)
		c.logger.Debug("profile fetch rejected", slog.Int("status", resp.StatusCode))
		return nil, model.ErrProfileFetch
	}

	var profile model.Profile
	if _, err := decodeResponse(resp, &profile, ""); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to the current user's profile
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{
		Method: http.MethodPatch,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	var profile model.Profile
	if _, err := decodeResponse(resp, &profile, msgUpdateFailed); err != nil {
		return nil, err
	}
	return &profile, nil
}
