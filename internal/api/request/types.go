package request

// JoinRequest is the body for joining a session as a participant
type JoinRequest struct {
	Name       string `json:"name"`
	AvatarSeed string `json:"avatar_seed,omitempty"`
}

// JoinHostRequest is the body for taking the host seat
type JoinHostRequest struct {
	Name string `json:"name"`
}

// AnswerRequest is the body for submitting an answer
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// ActRequest is the body for a betting action
type ActRequest struct {
	Action string `json:"action"` // fold, check, call, raise
	Amount int    `json:"amount,omitempty"`
}

// KickRequest is the body for removing a participant
type KickRequest struct {
	PlayerID string `json:"player_id"`
}

// AdjustBalanceRequest is the body for a host chip adjustment
type AdjustBalanceRequest struct {
	PlayerID string `json:"player_id"`
	Delta    int    `json:"delta"`
}

// BlindsRequest is the body for toggling minimum-raise escalation
type BlindsRequest struct {
	Enabled bool `json:"enabled"`
}
