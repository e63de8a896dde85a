package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
)

// Do issues an authenticated request to endpoint.
//
// The stored access token, if any, is sent as a bearer token. When the server
// answers 401 to a request that carried a token, the token is refreshed and the
// identical request is re-issued exactly once with the new token. If the refresh
// fails the token store is cleared and model.ErrSessionExpired is returned.
// If ctx ends while waiting for the refresh, ctx.Err() is returned and the
// stored tokens are left alone.
//
// Any other response, including non-2xx statuses, is returned as-is; the caller
// must close its body. Transport errors of the first attempt are returned unchanged.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions) (*http.Response, error) {
	accessToken := c.accessToken(ctx)
	requestID := newRequestID()

	resp, err := c.send(ctx, endpoint, opts, accessToken, requestID)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || accessToken == "" {
		return resp, nil
	}

	// The first 401 is never handed to the caller
	discard(resp)

	if !c.Refresh(ctx) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := c.store.Clear(ctx); err != nil {
			c.logger.Warn("failed to clear tokens", slog.String("error", err.Error()))
		}
		return nil, model.ErrSessionExpired
	}

	return c.send(ctx, endpoint, opts, c.accessToken(ctx), requestID)
}

// accessToken reads the current access token. An unreadable store counts as no session.
func (c *Client) accessToken(ctx context.Context) string {
	tokens, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("failed to read tokens", slog.String("error", err.Error()))
		return ""
	}
	return tokens.AccessToken
}
