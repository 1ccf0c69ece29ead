package handler

import (
	"net/http"
	"strconv"

	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/internal/repository"
	"github.com/freeeve/hexhaven/api/internal/service"
)

const maxListLimit = 100

// ResultHandler serves archived games and the leaderboard.
type ResultHandler struct {
	results repository.ResultRepository
}

// NewResultHandler creates a ResultHandler. results may be nil when no
// database is configured; every endpoint then reports empty data.
func NewResultHandler(results repository.ResultRepository) *ResultHandler {
	return &ResultHandler{results: results}
}

func limitParam(r *http.Request, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return fallback
	}
	return min(n, maxListLimit)
}

// ListRecent handles GET /api/v1/results
func (h *ResultHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		writeJSON(w, http.StatusOK, []model.GameResult{})
		return
	}
	results, err := h.results.ListRecent(r.Context(), limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []model.GameResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// GetResult handles GET /api/v1/results/{code}
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	result, err := h.results.FindByCode(r.Context(), service.NormalizeCode(r.PathValue("code")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *ResultHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		writeJSON(w, http.StatusOK, []model.LeaderboardEntry{})
		return
	}
	entries, err := h.results.Leaderboard(r.Context(), limitParam(r, 25))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
