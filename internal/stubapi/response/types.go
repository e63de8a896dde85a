package response

import (
	"time"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/services/accounts"
)

// UserSummary is the "user" object of login-class responses
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User is the full profile returned by /users/me/
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Elo         int       `json:"elo"`
	XP          int       `json:"xp"`
	TotalGames  int       `json:"total_games"`
	Wins        int       `json:"wins"`
	IsGuest     bool      `json:"is_guest"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          string(u.ID),
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Elo:         u.Elo,
		XP:          u.XP,
		TotalGames:  u.TotalGames,
		Wins:        u.Wins,
		IsGuest:     u.IsGuest,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is the response for login, register, guest and convert-guest
type AuthResponse struct {
	Access      string      `json:"access"`
	Refresh     string      `json:"refresh"`
	User        UserSummary `json:"user"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	IsGuest     bool        `json:"is_guest"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *accounts.Session) AuthResponse {
	return AuthResponse{
		Access:  s.Access,
		Refresh: s.Refresh,
		User: UserSummary{
			ID:       string(s.User.ID),
			Username: s.User.Username,
			Email:    s.User.Email,
		},
		Username:    s.User.Username,
		DisplayName: s.User.DisplayName,
		IsGuest:     s.User.IsGuest,
	}
}

// RefreshResponse is the response for the token refresh endpoint
type RefreshResponse struct {
	Access string `json:"access"`
}

// GameResultResponse acknowledges a recorded match
type GameResultResponse struct {
	Status  string `json:"status"`
	MatchID string `json:"match_id"`
}
