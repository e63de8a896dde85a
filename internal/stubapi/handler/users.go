package handler

import (
	"net/http"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/services/accounts"
	"github.com/mcoot/whoosh/internal/stubapi/apierr"
	"github.com/mcoot/whoosh/internal/stubapi/middleware"
	"github.com/mcoot/whoosh/internal/stubapi/response"
)

// UserHandler handles the /users/ endpoints
type UserHandler struct {
	accounts *accounts.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *accounts.Service) *UserHandler {
	return &UserHandler{
		accounts: accountService,
	}
}

// GetMe handles GET /api/users/me/
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// UpdateMe handles PATCH /api/users/me/
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var update model.ProfileUpdate
	if !decode(w, r, &update) {
		return
	}

	updated, err := h.accounts.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(updated))
}
