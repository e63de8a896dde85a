package handler

import (
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/services/games"
	"github.com/mcoot/whoosh/internal/stubapi/apierr"
	"github.com/mcoot/whoosh/internal/stubapi/middleware"
	"github.com/mcoot/whoosh/internal/stubapi/request"
	"github.com/mcoot/whoosh/internal/stubapi/response"
)

// GameHandler handles match history, results and matchmaking
type GameHandler struct {
	games *games.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *games.Service) *GameHandler {
	return &GameHandler{
		games: gameService,
	}
}

// History handles GET /api/game/history/
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	history, err := h.games.History(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, history)
}

// Result handles POST /api/game/result/, called by game servers rather than users
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	var req request.GameResultRequest
	if !decode(w, r, &req) {
		return
	}

	match, err := h.games.RecordResult(r.Context(), &model.Match{
		ID:           req.GameID,
		WinnerID:     model.UserID(req.WinnerID),
		Participants: req.Participants,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResultResponse{Status: "success", MatchID: match.ID})
}

// JoinQueue handles POST /api/match/join/
func (h *GameHandler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.JoinQueueRequest
	if !decode(w, r, &req) {
		return
	}

	ticket, err := h.games.JoinQueue(r.Context(), user.ID, req.Queue)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ticket)
}
