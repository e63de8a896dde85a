package model

import "time"

// Profile is the read-only view of the current user returned by /users/me/
type Profile struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Elo         int        `json:"elo"`
	XP          int        `json:"xp"`
	TotalGames  int        `json:"total_games"`
	Wins        int        `json:"wins"`
	IsGuest     bool       `json:"is_guest"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ProfileUpdate is a partial profile payload for PATCH /users/me/.
// Nil fields are left out of the request.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// IsEmpty reports whether no field is set
func (u ProfileUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.DisplayName == nil
}

// AccountSummary is the "user" object embedded in login/register responses
type AccountSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is the payload of a login-class call (login, register, guest, convert).
// Raw holds the full parsed body, including fields this type does not name.
type AuthResult struct {
	Access      string          `json:"access,omitempty"`
	Refresh     string          `json:"refresh,omitempty"`
	User        *AccountSummary `json:"user,omitempty"`
	Username    string          `json:"username,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	IsGuest     bool            `json:"is_guest,omitempty"`

	Raw map[string]any `json:"-"`
}

// HasTokenPair reports whether the result carries both a new access and refresh token
func (r *AuthResult) HasTokenPair() bool {
	return r.Access != "" && r.Refresh != ""
}
