// Package stubapi is an in-process implementation of the Whoosh REST API.
// It serves the client's HTTP contract for development and end-to-end tests.
package stubapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/whoosh/internal/services/accounts"
	"github.com/mcoot/whoosh/internal/services/games"
	"github.com/mcoot/whoosh/internal/stubapi/handler"
	"github.com/mcoot/whoosh/internal/stubapi/middleware"
	"github.com/mcoot/whoosh/internal/stubapi/response"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *accounts.Service
	GameService    *games.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AccountService)
	userHandler := handler.NewUserHandler(cfg.AccountService)
	gameHandler := handler.NewGameHandler(cfg.GameService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AccountService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Auth routes (no auth required to obtain tokens)
	api.HandleFunc("/auth/register/", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login/", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/guest/", authHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/auth/token/refresh/", authHandler.Refresh).Methods(http.MethodPost)

	// Game servers report results without a user token
	api.HandleFunc("/game/result/", gameHandler.Result).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health/", healthHandler).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/auth/convert-guest/", authHandler.ConvertGuest).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/", userHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/", userHandler.UpdateMe).Methods(http.MethodPatch)
	protected.HandleFunc("/game/history/", gameHandler.History).Methods(http.MethodGet)
	protected.HandleFunc("/match/join/", gameHandler.JoinQueue).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
