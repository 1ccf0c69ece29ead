package service

// Event types pushed to game subscribers.
const (
	EventState              = "state"
	EventPlayerJoined       = "playerJoined"
	EventGameStarted        = "gameStarted"
	EventBoardShuffled      = "boardShuffled"
	EventActionApplied      = "actionApplied"
	EventGameFinished       = "gameFinished"
	EventGameExpired        = "gameExpired"
	EventPlayerReconnected  = "playerReconnected"
	EventPlayerDisconnected = "playerDisconnected"
)

// Broadcaster sends real-time events to connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastGameEvent(code, eventType string, data any)
	SendToPlayer(code, playerID, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any)   {}
func (NoopBroadcaster) SendToPlayer(string, string, string, any) {}
