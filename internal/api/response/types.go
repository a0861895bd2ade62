package response

import (
	"github.com/quizpoker/quizpoker/internal/model"
)

// SessionResponse wraps a session snapshot
type SessionResponse struct {
	Session model.Snapshot `json:"session"`
}

// JoinResponse returns the caller's new identity with the snapshot
type JoinResponse struct {
	PlayerID string         `json:"player_id"`
	Session  model.Snapshot `json:"session"`
}
