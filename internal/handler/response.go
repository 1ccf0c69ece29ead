package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/service"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

const maxBodySize = 64 << 10

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v)
}

// statusFor maps service, auth and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrPlayerNotFound),
		catan.IsKind(err, catan.KindNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGameExpired):
		return http.StatusGone
	case errors.Is(err, service.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrNotSeated):
		return http.StatusUnauthorized
	case catan.IsKind(err, catan.KindTurn), catan.IsKind(err, catan.KindPhase):
		return http.StatusConflict
	case catan.KindOf(err) != "":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status. Unexpected errors are
// logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Unhandled service error")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// ActionResponse is the discriminated result of an action request.
type ActionResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Kind    catan.ErrorKind  `json:"kind,omitempty"`
	Type    catan.ActionType `json:"type,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Phase   catan.Phase      `json:"phase,omitempty"`
	Winner  string           `json:"winner,omitempty"`
}

func actionSuccess(out *service.Outcome) ActionResponse {
	return ActionResponse{Success: true, Type: out.Type, Result: out.Result, Phase: out.Phase, Winner: out.Winner}
}

func actionFailure(err error) ActionResponse {
	return ActionResponse{Error: err.Error(), Kind: catan.KindOf(err)}
}
