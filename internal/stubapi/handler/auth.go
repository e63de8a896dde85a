package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/whoosh/internal/services/accounts"
	"github.com/mcoot/whoosh/internal/stubapi/apierr"
	"github.com/mcoot/whoosh/internal/stubapi/middleware"
	"github.com/mcoot/whoosh/internal/stubapi/request"
	"github.com/mcoot/whoosh/internal/stubapi/response"
)

// AuthHandler handles the /auth/ endpoints
type AuthHandler struct {
	accounts *accounts.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountService *accounts.Service) *AuthHandler {
	return &AuthHandler{
		accounts: accountService,
	}
}

// Register handles POST /api/auth/register/
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/auth/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// CreateGuest handles POST /api/auth/guest/
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.GuestRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.accounts.CreateGuest(r.Context(), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// ConvertGuest handles POST /api/auth/convert-guest/
func (h *AuthHandler) ConvertGuest(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.accounts.ConvertGuest(r.Context(), user.ID, req.Username, req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Refresh handles POST /api/auth/token/refresh/
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("refresh is required"))
		return
	}

	access, err := h.accounts.Refresh(r.Context(), req.Refresh)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RefreshResponse{Access: access})
}

// decode reads a JSON body, writing a 400 on failure. An empty body decodes as {}.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return false
	}
	return true
}
