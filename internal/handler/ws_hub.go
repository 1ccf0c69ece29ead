package handler

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Event types that originate in the transport rather than the service.
const (
	EventConnected    = "connected"
	EventActionResult = "actionResult"
	EventPong         = "pong"
	EventError        = "error"
)

// WSEvent is the envelope for all WebSocket messages.
type WSEvent struct {
	Type string `json:"type"`
	Game string `json:"game"`
	ID   string `json:"id,omitempty"`
	Data any    `json:"data"`
}

// ClientMessage is the envelope for messages sent from the client. ID is
// echoed on the matching actionResult.
type ClientMessage struct {
	Action string          `json:"action"` // "act" or "ping"
	ID     string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// WSConn wraps a WebSocket connection bound to one seat.
type WSConn struct {
	conn     *websocket.Conn
	gameCode string
	playerID string
	send     chan []byte
	limiter  *rate.Limiter
}

// enqueue queues data without blocking. It reports false when the buffer is full.
func (c *WSConn) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Hub tracks live connections by game.
type Hub struct {
	mu          sync.RWMutex
	connections map[*WSConn]bool
	games       map[string]map[*WSConn]bool // game code -> connections
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*WSConn]bool),
		games:       make(map[string]map[*WSConn]bool),
	}
}

// Register adds a connection and subscribes it to its game.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
	if h.games[c.gameCode] == nil {
		h.games[c.gameCode] = make(map[*WSConn]bool)
	}
	h.games[c.gameCode][c] = true
}

// Unregister removes a connection and closes its send channel. Repeated
// calls are ignored.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connections[c] {
		return
	}
	delete(h.connections, c)
	if conns, ok := h.games[c.gameCode]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.games, c.gameCode)
		}
	}
	close(c.send)
}

// BroadcastToGame sends an event to every connection in a game.
func (h *Hub) BroadcastToGame(code string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("game", code).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.games[code] {
		if !c.enqueue(data) {
			log.Warn().Str("playerId", c.playerID).Str("game", code).Msg("Dropping WebSocket message, buffer full")
		}
	}
}

// SendEventToPlayer sends an event to every connection of one seat.
func (h *Hub) SendEventToPlayer(code, playerID string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("game", code).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.games[code] {
		if c.playerID == playerID && !c.enqueue(data) {
			log.Warn().Str("playerId", playerID).Str("game", code).Msg("Dropping WebSocket message, buffer full")
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// GameSubscriberCount returns the number of connections in a game.
func (h *Hub) GameSubscriberCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[code])
}

// PlayerConnected reports whether a seat has at least one live connection.
func (h *Hub) PlayerConnected(code, playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.games[code] {
		if c.playerID == playerID {
			return true
		}
	}
	return false
}
