package ui

import (
	"fmt"
	"math"

	"github.com/mcoot/whoosh/internal/model"
)

// DefaultElo is displayed when the profile carries no rating
const DefaultElo = 1000

// ProfileView is a profile prepared for display
type ProfileView struct {
	HeaderName  string `json:"header_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Elo         int    `json:"elo"`
	XP          int    `json:"xp"`
	TotalGames  int    `json:"total_games"`
	Wins        int    `json:"wins"`
	WinRate     string `json:"win_rate"`
	IsGuest     bool   `json:"is_guest"`
	// ShowConvert is true when the guest conversion form should be offered
	ShowConvert bool `json:"show_convert"`
}

// NewProfileView applies the display defaults to a profile
func NewProfileView(p *model.Profile) ProfileView {
	v := ProfileView{
		HeaderName:  p.DisplayName,
		Username:    orDefault(p.Username, "-"),
		Email:       orDefault(p.Email, "Not set"),
		DisplayName: orDefault(p.DisplayName, "-"),
		Elo:         p.Elo,
		XP:          p.XP,
		TotalGames:  p.TotalGames,
		Wins:        p.Wins,
		WinRate:     WinRate(p.Wins, p.TotalGames),
		IsGuest:     p.IsGuest,
		ShowConvert: p.IsGuest,
	}
	if v.HeaderName == "" {
		v.HeaderName = p.Username
	}
	if v.Elo == 0 {
		v.Elo = DefaultElo
	}
	return v
}

// WinRate formats wins over games as a percentage with one decimal.
// Ties round up, so 1 of 16 is 6.3%.
func WinRate(wins, games int) string {
	if games <= 0 {
		return "0%"
	}
	rate := float64(wins) / float64(games) * 100
	return fmt.Sprintf("%.1f%%", math.Floor(rate*10+0.5)/10)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
