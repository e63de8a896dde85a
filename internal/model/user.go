package model

import (
	"errors"
	"time"
)

// UserID identifies a backend account
type UserID string

// Backend errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// User is an account as held by the backend. Guests have no password or email.
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	DisplayName  string    `json:"display_name"`
	Elo          int       `json:"elo"`
	XP           int       `json:"xp"`
	TotalGames   int       `json:"total_games"`
	Wins         int       `json:"wins"`
	IsGuest      bool      `json:"is_guest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StartingElo is the rating of a new account
const StartingElo = 1000

// Profile returns the client-facing view of the account
func (u *User) Profile() Profile {
	created := u.CreatedAt
	return Profile{
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Elo:         u.Elo,
		XP:          u.XP,
		TotalGames:  u.TotalGames,
		Wins:        u.Wins,
		IsGuest:     u.IsGuest,
		CreatedAt:   &created,
	}
}
