package handler

// BroadcastGameEvent implements service.Broadcaster using the WebSocket hub.
func (h *Hub) BroadcastGameEvent(code, eventType string, data any) {
	h.BroadcastToGame(code, WSEvent{Type: eventType, Game: code, Data: data})
}

// SendToPlayer implements service.Broadcaster for per-seat events.
func (h *Hub) SendToPlayer(code, playerID, eventType string, data any) {
	h.SendEventToPlayer(code, playerID, WSEvent{Type: eventType, Game: code, Data: data})
}
