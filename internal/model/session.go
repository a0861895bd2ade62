package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// BaseMinimumRaise is the minimum raise before any blind escalation
const BaseMinimumRaise = 20

// BlindEscalationInterval is the number of hands between blind increases
const BlindEscalationInterval = 3

// ActionRecord is one entry in the rolling action history
type ActionRecord struct {
	PlayerName string
	Kind       string
	Amount     int
	At         time.Time
}

// Session is the canonical record of one table: its players, the active
// question, and all betting state. All mutation goes through the session
// controller under a per-session command runner.
type Session struct {
	ID SessionID

	Players map[PlayerID]*Player
	// Order fixes turn and dealer order for participants (join order)
	Order  []PlayerID
	HostID PlayerID // empty while no host is connected

	Phase Phase

	// Active question state (zero while Phase is waiting)
	Question       *Question
	CorrectAnswer  string
	RemainingHints []string
	RevealedHints  []string
	LastQuestionID QuestionID

	// Betting state
	Pot           int
	CurrentBet    int // highest commitment required to stay in this round
	BettingRound  int // 0 outside betting, else 1-4
	MinimumRaise  int
	ActivePlayer  PlayerID // non-empty only during a betting phase
	LastAggressor PlayerID // last player to bet or raise this round
	OpenedBy      PlayerID // player who opened the current betting round

	// Hand bookkeeping
	HandNumber    int // 1-indexed number of the current hand
	DealerPos     int // index into Order, cosmetic, advances each hand
	BlindsEnabled bool

	ActionLog []ActionRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession returns an empty waiting session
func NewSession(id SessionID, now time.Time) *Session {
	return &Session{
		ID:            id,
		Players:       make(map[PlayerID]*Player),
		Phase:         PhaseWaiting,
		MinimumRaise:  BaseMinimumRaise,
		BlindsEnabled: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Player returns the player with the given ID, or nil
func (s *Session) Player(id PlayerID) *Player {
	return s.Players[id]
}

// Host returns the host player, or nil if none is connected
func (s *Session) Host() *Player {
	if s.HostID == "" {
		return nil
	}
	return s.Players[s.HostID]
}

// Participants returns the participants in join order
func (s *Session) Participants() []*Player {
	out := make([]*Player, 0, len(s.Order))
	for _, id := range s.Order {
		if p := s.Players[id]; p != nil && p.IsParticipant() {
			out = append(out, p)
		}
	}
	return out
}

// ActiveParticipants returns connected, non-folded participants in join
// order. All-in players are included: they are still in the hand.
func (s *Session) ActiveParticipants() []*Player {
	var out []*Player
	for _, p := range s.Participants() {
		if p.Connected && !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

// FindByName returns the participant with the given display name, or nil
func (s *Session) FindByName(name string) *Player {
	for _, p := range s.Participants() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// OrderIndex returns the position of the player in the turn order, or -1
func (s *Session) OrderIndex(id PlayerID) int {
	for i, oid := range s.Order {
		if oid == id {
			return i
		}
	}
	return -1
}

// Dealer returns the ID of the player on the dealer button, or empty
func (s *Session) Dealer() PlayerID {
	if len(s.Order) == 0 {
		return ""
	}
	return s.Order[s.DealerPos%len(s.Order)]
}

// RecordAction appends to the rolling action history
func (s *Session) RecordAction(name, kind string, amount int, at time.Time) {
	s.ActionLog = append(s.ActionLog, ActionRecord{
		PlayerName: name,
		Kind:       kind,
		Amount:     amount,
		At:         at,
	})
	const keep = 50
	if len(s.ActionLog) > keep {
		s.ActionLog = s.ActionLog[len(s.ActionLog)-keep:]
	}
}

// ClearQuestion drops all question-scoped state
func (s *Session) ClearQuestion() {
	s.Question = nil
	s.CorrectAnswer = ""
	s.RemainingHints = nil
	s.RevealedHints = nil
}

// ResetForNextHand returns the session to waiting after a showdown.
// Balances, the hand counter, the dealer button and blind settings
// survive; everything question- and bet-scoped is cleared.
func (s *Session) ResetForNextHand() {
	s.Phase = PhaseWaiting
	s.ClearQuestion()
	s.CurrentBet = 0
	s.BettingRound = 0
	s.ActivePlayer = ""
	s.LastAggressor = ""
	s.OpenedBy = ""
	s.ActionLog = nil
	for _, p := range s.Participants() {
		p.ResetForHand()
	}
	if n := len(s.Order); n > 0 {
		s.DealerPos = (s.DealerPos + 1) % n
	}
}

// TotalChips is the chip-conservation quantity: the pot plus every
// player balance. It only changes on join, kick and balance adjustment.
func (s *Session) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Balance
	}
	return total
}
