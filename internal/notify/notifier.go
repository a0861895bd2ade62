package notify

import (
	"github.com/quizpoker/quizpoker/internal/model"
)

// Message is the wire envelope pushed to connected clients
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Notifier pushes messages to clients watching a session
type Notifier interface {
	// Broadcast delivers a message to every client on the session
	Broadcast(sessionID model.SessionID, msg Message)

	// Send delivers a message to the clients of a single player
	Send(sessionID model.SessionID, playerID model.PlayerID, msg Message)
}
