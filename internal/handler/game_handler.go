package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/logger"
	"github.com/freeeve/hexhaven/api/internal/qrcode"
	"github.com/freeeve/hexhaven/api/internal/service"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// GameHandler handles the game REST endpoints.
type GameHandler struct {
	svc       *service.GameService
	jwtMgr    *auth.JWTManager
	publicURL string
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(svc *service.GameService, jwtMgr *auth.JWTManager, publicURL string) *GameHandler {
	return &GameHandler{svc: svc, jwtMgr: jwtMgr, publicURL: publicURL}
}

// SeatResponse is returned by create, join and reconnect.
type SeatResponse struct {
	*service.Seat
	Token   string `json:"token"`
	JoinURL string `json:"join_url"`
}

func (h *GameHandler) seatResponse(w http.ResponseWriter, status int, seat *service.Seat, userID string) {
	token, err := h.jwtMgr.GenerateSeatToken(userID, seat.Code, seat.PlayerID)
	if err != nil {
		log.Error().Err(err).Str("game", seat.Code).Msg("Failed to sign seat token")
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, SeatResponse{
		Seat:    seat,
		Token:   token,
		JoinURL: qrcode.JoinURL(h.publicURL, seat.Code),
	})
}

// seatFor returns the seat claims for the game in the request path.
func seatFor(r *http.Request, code string) (*auth.Claims, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil, auth.ErrMissingToken
	}
	if !claims.Seated() || claims.GameCode != service.NormalizeCode(code) {
		return nil, auth.ErrNotSeated
	}
	return claims, nil
}

func gameCode(r *http.Request) string {
	return service.NormalizeCode(r.PathValue("code"))
}

// CreateGame handles POST /api/v1/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Extended     bool   `json:"extended"`
		SpecialBuild bool   `json:"special_build"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	seat, err := h.svc.CreateGame(r.Context(), service.CreateRequest{
		Name:         req.Name,
		UserID:       userID,
		Extended:     req.Extended,
		SpecialBuild: req.SpecialBuild,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.seatResponse(w, http.StatusCreated, seat, userID)
}

// ListGames handles GET /api/v1/games
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games := h.svc.ListGames(r.Context())
	if games == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// JoinGame handles POST /api/v1/games/{code}/join
func (h *GameHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	seat, err := h.svc.JoinGame(r.Context(), gameCode(r), req.Name, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.seatResponse(w, http.StatusOK, seat, userID)
}

// Reconnect handles POST /api/v1/games/{code}/reconnect. It renews the seat token.
func (h *GameHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	claims, err := seatFor(r, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	seat, err := h.svc.Reconnect(r.Context(), code, claims.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.seatResponse(w, http.StatusOK, seat, claims.UserID)
}

// GetGame handles GET /api/v1/games/{code}. Callers without a seat in the
// game get the spectator projection.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	var playerID string
	if claims, err := seatFor(r, code); err == nil {
		playerID = claims.PlayerID
	}
	view, err := h.svc.View(r.Context(), code, playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// StartGame handles POST /api/v1/games/{code}/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	claims, err := seatFor(r, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.svc.StartGame(r.Context(), code, claims.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ShuffleBoard handles POST /api/v1/games/{code}/shuffle
func (h *GameHandler) ShuffleBoard(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	claims, err := seatFor(r, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.svc.ShuffleBoard(r.Context(), code, claims.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Act handles POST /api/v1/games/{code}/actions. Engine rejections use the
// action result shape with the mapped status code.
func (h *GameHandler) Act(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	claims, err := seatFor(r, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var a catan.Action
	if err := decodeJSON(w, r, &a); err != nil {
		writeJSON(w, http.StatusBadRequest, actionFailure(service.ErrInvalidAction))
		return
	}

	ctx := logger.WithGameCode(r.Context(), code)
	out, err := h.svc.Act(ctx, code, claims.PlayerID, a)
	if err != nil {
		writeJSON(w, statusFor(err), actionFailure(err))
		return
	}
	writeJSON(w, http.StatusOK, actionSuccess(out))
}

// PlayersOnHex handles GET /api/v1/games/{code}/hexes/{hex}/players
func (h *GameHandler) PlayersOnHex(w http.ResponseWriter, r *http.Request) {
	hex, err := catan.ParseHexCoord(r.PathValue("hex"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	code := gameCode(r)
	var exclude string
	if claims, err := seatFor(r, code); err == nil {
		exclude = claims.PlayerID
	}
	players, err := h.svc.PlayersOnHex(r.Context(), code, hex, exclude)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if players == nil {
		players = []catan.StealCandidate{}
	}
	writeJSON(w, http.StatusOK, players)
}

// VertexHexes handles GET /api/v1/games/{code}/vertices/{vertex}/hexes
func (h *GameHandler) VertexHexes(w http.ResponseWriter, r *http.Request) {
	v, err := catan.ParseVertexKey(r.PathValue("vertex"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hexes, err := h.svc.VertexHexes(r.Context(), gameCode(r), v)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hexes)
}

// QRCode handles GET /api/v1/games/{code}/qr and returns a PNG join link.
func (h *GameHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	code := gameCode(r)
	if _, err := h.svc.View(r.Context(), code, ""); err != nil {
		writeServiceError(w, err)
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := qrcode.Generate(qrcode.JoinURL(h.publicURL, code), size)
	if err != nil {
		log.Error().Err(err).Str("game", code).Msg("QR generation failed")
		writeError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
