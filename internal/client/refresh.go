package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Refresh exchanges the stored refresh token for a new access token.
//
// It returns false without any network call when no refresh token is stored,
// and false when the server rejects the token or cannot be reached. On success
// the new access token is stored next to the unchanged refresh token.
// Concurrent callers share a single in-flight refresh. The shared refresh is
// detached from the caller that started it and bounded by the HTTP timeout;
// a caller whose ctx ends stops waiting and gets false without affecting the others.
func (c *Client) Refresh(ctx context.Context) bool {
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx)), nil
	})
	c.refreshWaiters.Add(1)
	defer c.refreshWaiters.Add(-1)

	select {
	case res := <-ch:
		ok, _ := res.Val.(bool)
		return ok
	case <-ctx.Done():
		return false
	}
}

func (c *Client) refresh(ctx context.Context) bool {
	tokens, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("token refresh failed", slog.String("error", err.Error()))
		return false
	}
	if !tokens.HasRefresh() {
		return false
	}

	body, err := json.Marshal(refreshRequest{Refresh: tokens.RefreshToken})
	if err != nil {
		return false
	}

	resp, err := c.send(ctx, EndpointTokenRefresh, RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	}, "", newRequestID())
	if err != nil {
		c.logger.Warn("token refresh failed", slog.String("error", err.Error()))
		return false
	}
	defer discard(resp)

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug("token refresh rejected", slog.Int("status", resp.StatusCode))
		return false
	}

	var data refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("token refresh failed", slog.String("error", err.Error()))
		return false
	}
	if data.Access == "" {
		c.logger.Warn("token refresh failed", slog.String("error", "response has no access token"))
		return false
	}

	// Refresh tokens are not rotated
	if err := c.store.Set(ctx, data.Access, tokens.RefreshToken); err != nil {
		c.logger.Warn("token refresh failed", slog.String("error", err.Error()))
		return false
	}
	return true
}
