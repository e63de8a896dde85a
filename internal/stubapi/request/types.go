package request

import "github.com/mcoot/whoosh/internal/model"

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for registering and for converting a guest
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GuestRequest is the request body for creating a guest. DisplayName may be null.
type GuestRequest struct {
	DisplayName *string `json:"display_name"`
}

// RefreshRequest is the request body for refreshing an access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// JoinQueueRequest is the request body for joining matchmaking
type JoinQueueRequest struct {
	Queue string `json:"queue"`
}

// GameResultRequest is the request body a game server posts when a match ends
type GameResultRequest struct {
	GameID       string                   `json:"game_id"`
	WinnerID     string                   `json:"winner_id"`
	Participants []model.MatchParticipant `json:"participants"`
}
