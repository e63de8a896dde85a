package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type guestRequest struct {
	DisplayName *string `json:"display_name"`
}

// Login authenticates with username and password and starts a new session
func (c *Client) Login(ctx context.Context, username, password string) (*model.AuthResult, error) {
	return c.startSession(ctx, EndpointLogin, loginRequest{
		Username: username,
		Password: password,
	}, msgLoginFailed)
}

// Register creates an account and starts a new session for it
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.AuthResult, error) {
	return c.startSession(ctx, EndpointRegister, registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, msgRegisterFailed)
}

// CreateGuest creates a guest account and starts a new session for it.
// A nil displayName lets the server pick one.
func (c *Client) CreateGuest(ctx context.Context, displayName *string) (*model.AuthResult, error) {
	return c.startSession(ctx, EndpointGuest, guestRequest{
		DisplayName: displayName,
	}, msgGuestFailed)
}

// ConvertGuest turns the current guest session into a registered account.
// Stored tokens are replaced only if the server returns a new pair.
func (c *Client) ConvertGuest(ctx context.Context, username, email, password string) (*model.AuthResult, error) {
	body, err := json.Marshal(registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.Do(ctx, EndpointConvertGuest, RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeAuthResult(resp, msgConvertFailed)
	if err != nil {
		return nil, err
	}

	if result.HasTokenPair() {
		if err := c.store.Set(ctx, result.Access, result.Refresh); err != nil {
			return nil, fmt.Errorf("failed to save tokens: %w", err)
		}
	}
	return result, nil
}

// Logout drops the stored session. No request is made.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsAuthenticated reports whether an access token is stored. The token is not validated.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	tokens, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("failed to read tokens", slog.String("error", err.Error()))
		return false
	}
	return tokens.HasAccess()
}

// Tokens returns the stored token pair
func (c *Client) Tokens(ctx context.Context) (model.TokenPair, error) {
	return c.store.Get(ctx)
}

// startSession posts credentials to an unauthenticated endpoint and replaces
// the stored tokens with the returned pair
func (c *Client) startSession(ctx context.Context, endpoint string, payload any, fallback string) (*model.AuthResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.send(ctx, endpoint, RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	}, "", newRequestID())
	if err != nil {
		return nil, err
	}

	result, err := decodeAuthResult(resp, fallback)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, result.Access, result.Refresh); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}
	return result, nil
}

func decodeAuthResult(resp *http.Response, fallback string) (*model.AuthResult, error) {
	var result model.AuthResult
	body, err := decodeResponse(resp, &result, fallback)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, &result.Raw); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return &result, nil
}
