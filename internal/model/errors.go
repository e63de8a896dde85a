package model

import "errors"

// Client errors. Messages are shown to the user as-is.
var (
	// ErrSessionExpired is returned when a 401 could not be resolved by a token refresh
	ErrSessionExpired = errors.New("Session expired. Please login again.") //nolint:staticcheck // user-facing

	// ErrProfileFetch is returned by GetProfile for any non-success status
	ErrProfileFetch = errors.New("Failed to fetch profile") //nolint:staticcheck // user-facing

	// ErrNotAuthenticated is returned when an operation needs a stored session
	ErrNotAuthenticated = errors.New("not authenticated")
)
