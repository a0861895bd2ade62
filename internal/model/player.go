package model

import "time"

// PlayerID uniquely identifies a player connection within a session.
// A reconnecting player receives a fresh PlayerID; the old record is
// migrated in place.
type PlayerID string

// Role distinguishes the host from participants
type Role string

const (
	RoleParticipant Role = "participant"
	RoleHost        Role = "host"
)

// StartingBalance is the chip balance a new participant receives on join
const StartingBalance = 1000

// Player represents a member of a session
type Player struct {
	ID         PlayerID
	Name       string
	Role       Role
	AvatarSeed string

	// Chip state
	Balance  int
	RoundBet int // chips committed in the current betting round

	// Per-hand flags
	Folded         bool
	AllIn          bool
	Acted          bool // has taken a betting action in the current round
	Answer         *string
	AnswerRevealed bool

	// Connected is false while the player is disconnected; the record is
	// kept so pot and bet bookkeeping stay consistent until a kick.
	Connected bool

	JoinedAt time.Time
}

// IsParticipant returns true for non-host members
func (p *Player) IsParticipant() bool {
	return p.Role == RoleParticipant
}

// CanAct returns true if the player may take a betting action
func (p *Player) CanAct() bool {
	return p.Connected && !p.Folded && (!p.AllIn || p.Balance > 0)
}

// HasAnswered returns true once the player has submitted an answer
func (p *Player) HasAnswered() bool {
	return p.Answer != nil
}

// ResetForHand clears the per-hand state, preserving the balance
func (p *Player) ResetForHand() {
	p.RoundBet = 0
	p.Folded = false
	p.AllIn = false
	p.Acted = false
	p.Answer = nil
	p.AnswerRevealed = false
}
