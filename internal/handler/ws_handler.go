package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/service"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 8192
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware
	},
}

// WSOptions bounds live connections.
type WSOptions struct {
	MaxConnections int
	RateLimit      float64 // actions per second per connection
	RateBurst      int
}

// WSHandler serves the live game channel.
type WSHandler struct {
	hub    *Hub
	svc    *service.GameService
	jwtMgr *auth.JWTManager
	opts   WSOptions
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub, svc *service.GameService, jwtMgr *auth.JWTManager, opts WSOptions) *WSHandler {
	if opts.MaxConnections <= 0 {
		opts.MaxConnections = 200
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	return &WSHandler{hub: hub, svc: svc, jwtMgr: jwtMgr, opts: opts}
}

// ServeWS handles GET /api/v1/ws and upgrades to WebSocket.
// Auth via ?token= query parameter (WebSocket can't send headers). The
// token must be a seat token.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "missing token parameter")
		return
	}
	claims, err := h.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if !claims.Seated() {
		writeServiceError(w, auth.ErrNotSeated)
		return
	}
	if h.hub.ConnectionCount() >= h.opts.MaxConnections {
		writeError(w, http.StatusServiceUnavailable, "server is full")
		return
	}

	seat, err := h.svc.Reconnect(r.Context(), claims.GameCode, claims.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSConn{
		conn:     conn,
		gameCode: seat.Code,
		playerID: seat.PlayerID,
		send:     make(chan []byte, sendBufSize),
		limiter:  rate.NewLimiter(rate.Limit(h.opts.RateLimit), h.opts.RateBurst),
	}
	h.hub.Register(client)

	// Send the current state first so the client can render immediately.
	welcome, _ := json.Marshal(WSEvent{Type: EventConnected, Game: seat.Code, Data: seat})
	client.send <- welcome

	go h.writePump(client)
	go h.readPump(client)

	log.Info().Str("game", seat.Code).Str("playerId", seat.PlayerID).
		Int("total", h.hub.ConnectionCount()).Msg("WebSocket client connected")
}

// readPump reads client messages until the connection drops.
func (h *WSHandler) readPump(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		if !h.hub.PlayerConnected(c.gameCode, c.playerID) {
			h.svc.Disconnect(c.gameCode, c.playerID)
		}
		log.Info().Str("game", c.gameCode).Str("playerId", c.playerID).Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("playerId", c.playerID).Msg("WebSocket unexpected close")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.reply(c, WSEvent{Type: EventError, Data: map[string]string{"error": "malformed message"}})
			continue
		}

		switch msg.Action {
		case "ping":
			h.reply(c, WSEvent{Type: EventPong, ID: msg.ID})
		case "act":
			h.reply(c, WSEvent{Type: EventActionResult, ID: msg.ID, Data: h.act(c, msg.Data)})
		default:
			h.reply(c, WSEvent{Type: EventError, ID: msg.ID, Data: map[string]string{"error": "unknown action " + msg.Action}})
		}
	}
}

func (h *WSHandler) act(c *WSConn, data json.RawMessage) ActionResponse {
	if !c.limiter.Allow() {
		return ActionResponse{Error: "rate limit exceeded"}
	}
	var a catan.Action
	if err := json.Unmarshal(data, &a); err != nil {
		return actionFailure(service.ErrInvalidAction)
	}
	out, err := h.svc.Act(context.Background(), c.gameCode, c.playerID, a)
	if err != nil {
		return actionFailure(err)
	}
	return actionSuccess(out)
}

func (h *WSHandler) reply(c *WSConn, event WSEvent) {
	event.Game = c.gameCode
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket reply")
		return
	}
	if !c.enqueue(data) {
		log.Warn().Str("playerId", c.playerID).Msg("Dropping WebSocket reply, buffer full")
	}
}

// writePump writes messages to the WebSocket connection.
func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
