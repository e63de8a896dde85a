package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a failure reported by the API with a non-success status
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Default messages used when an error body names no reason
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgGuestFailed    = "Failed to create guest account"
	msgConvertFailed  = "Failed to convert guest account"
	msgUpdateFailed   = "Failed to update profile"
	msgHistoryFailed  = "Failed to fetch match history"
	msgQueueFailed    = "Failed to join matchmaking queue"
	msgHealthFailed   = "Health check failed"
)

// errorFromBody builds an APIError from a JSON error body, taking the message
// from "error", then "detail", then the fallback.
func errorFromBody(status int, body []byte, fallback string) *APIError {
	var fields map[string]any
	_ = json.Unmarshal(body, &fields)

	for _, key := range []string{"error", "detail"} {
		if msg, ok := fields[key].(string); ok && msg != "" {
			return &APIError{Status: status, Message: msg}
		}
	}
	return &APIError{Status: status, Message: fallback}
}

// decodeResponse reads and closes resp. A non-success status becomes an
// APIError; otherwise the body is parsed into out.
func decodeResponse(resp *http.Response, out any, fallback string) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return body, errorFromBody(resp.StatusCode, body, fallback)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return body, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return body, nil
}
