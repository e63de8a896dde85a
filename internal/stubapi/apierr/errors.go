// Package apierr maps service errors to the backend's JSON error bodies:
// {"error": ...} for request failures and {"detail": ..., "code": ...} for
// authentication failures.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/services/accounts"
	"github.com/mcoot/whoosh/internal/services/games"
)

// ErrorResponse is the body of a request failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is the body of an authentication failure
type DetailResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Common detail codes
const (
	CodeTokenNotValid       = "token_not_valid"
	CodeNotAuthenticated    = "not_authenticated"
	CodeAuthenticationFails = "authentication_failed"
)

// httpError combines an HTTP status code with a response body
type httpError struct {
	status int
	body   any
}

// Error implements error interface
func (e *httpError) Error() string {
	switch b := e.body.(type) {
	case ErrorResponse:
		return b.Error
	case DetailResponse:
		return b.Detail
	}
	return http.StatusText(e.status)
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, accounts.ErrRegisterFieldsRequired),
		errors.Is(err, accounts.ErrLoginFieldsRequired):
		return newError(http.StatusBadRequest, err.Error())
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return newError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, accounts.ErrUsernameExists):
		return newError(http.StatusBadRequest, "Username already exists")
	case errors.Is(err, accounts.ErrEmailExists):
		return newError(http.StatusBadRequest, "Email already exists")
	case errors.Is(err, accounts.ErrNotGuest):
		return newError(http.StatusBadRequest, "User is not a guest account")
	case errors.Is(err, accounts.ErrInvalidUpdate):
		return newError(http.StatusBadRequest, "Username may not be blank")
	case errors.Is(err, accounts.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, DetailResponse{"Token is invalid or expired", CodeTokenNotValid}}
	case errors.Is(err, games.ErrInvalidResult):
		return newError(http.StatusBadRequest, "At least one participant is required")
	case errors.Is(err, model.ErrUserNotFound):
		return newError(http.StatusNotFound, "User not found")
	default:
		return newError(http.StatusInternalServerError, "Internal server error")
	}
}

func newError(status int, message string) *httpError {
	return &httpError{status, ErrorResponse{Error: message}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return newError(http.StatusBadRequest, message)
}

// NewNotAuthenticatedError is returned when no bearer token was sent
func NewNotAuthenticatedError() error {
	return &httpError{http.StatusUnauthorized, DetailResponse{"Authentication credentials were not provided.", CodeNotAuthenticated}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return newError(http.StatusInternalServerError, "Internal server error")
}
