package handler

import (
	"net/http"
	"strings"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/internal/repository"
)

const maxDisplayName = 24

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userRepo repository.UserRepository
	results  repository.ResultRepository
}

// NewUserHandler creates a UserHandler. results may be nil.
func NewUserHandler(userRepo repository.UserRepository, results repository.ResultRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo, results: results}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" || len([]rune(name)) > maxDisplayName {
		writeError(w, http.StatusBadRequest, "display_name must be 1-24 characters")
		return
	}

	if err := h.userRepo.UpdateDisplayName(r.Context(), userID, name); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// MyResults handles GET /api/v1/users/me/results
func (h *UserHandler) MyResults(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		writeJSON(w, http.StatusOK, []model.GameResult{})
		return
	}
	results, err := h.results.ListByUser(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []model.GameResult{}
	}
	writeJSON(w, http.StatusOK, results)
}
