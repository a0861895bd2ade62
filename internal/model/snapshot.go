package model

import "time"

// PlayerSnapshot is the wire form of a player as seen by one viewer
type PlayerSnapshot struct {
	ID             PlayerID `json:"id"`
	Name           string   `json:"name"`
	Role           Role     `json:"role"`
	AvatarSeed     string   `json:"avatar_seed"`
	Balance        int      `json:"balance"`
	RoundBet       int      `json:"round_bet"`
	Folded         bool     `json:"folded"`
	AllIn          bool     `json:"all_in"`
	HasAnswered    bool     `json:"has_answered"`
	Answer         *string  `json:"answer,omitempty"`
	AnswerRevealed bool     `json:"answer_revealed"`
	Connected      bool     `json:"connected"`
}

// ActionSnapshot is one entry of the action history on the wire
type ActionSnapshot struct {
	PlayerName string    `json:"player_name"`
	Kind       string    `json:"kind"`
	Amount     int       `json:"amount"`
	At         time.Time `json:"at"`
}

// Snapshot is the per-viewer wire form of a session. Hidden information
// (unrevealed answers, the correct answer, undealt hints) is redacted
// according to the viewer and phase before it leaves the server.
type Snapshot struct {
	ID    SessionID `json:"id"`
	Phase Phase     `json:"phase"`

	QuestionText  string   `json:"question_text,omitempty"`
	RevealedHints []string `json:"revealed_hints,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`

	Pot          int      `json:"pot"`
	CurrentBet   int      `json:"current_bet"`
	BettingRound int      `json:"betting_round,omitempty"`
	MinimumRaise int      `json:"minimum_raise"`
	ActivePlayer PlayerID `json:"active_player,omitempty"`

	HandNumber    int      `json:"hand_number"`
	Dealer        PlayerID `json:"dealer,omitempty"`
	BlindsEnabled bool     `json:"blinds_enabled"`

	HostID  PlayerID         `json:"host_id,omitempty"`
	Players []PlayerSnapshot `json:"players"`
	Actions []ActionSnapshot `json:"actions,omitempty"`

	// You identifies the viewer's own seat, when they have one
	You PlayerID `json:"you,omitempty"`
}

// answerPublic reports whether the correct answer is table-visible: once
// the hand has reached the final betting round or the showdown.
func (s *Session) answerPublic() bool {
	return s.Phase == PhaseBetting4 || s.Phase == PhaseShowdown
}

// SnapshotFor renders the session for a single viewer. The host sees
// everything; participants see their own answer, answers their owners
// have shown, and everyone's answers once the hand reaches showdown.
func SnapshotFor(s *Session, viewer PlayerID) Snapshot {
	hostView := viewer != "" && viewer == s.HostID

	snap := Snapshot{
		ID:            s.ID,
		Phase:         s.Phase,
		RevealedHints: append([]string(nil), s.RevealedHints...),
		Pot:           s.Pot,
		CurrentBet:    s.CurrentBet,
		BettingRound:  s.BettingRound,
		MinimumRaise:  s.MinimumRaise,
		ActivePlayer:  s.ActivePlayer,
		HandNumber:    s.HandNumber,
		Dealer:        s.Dealer(),
		BlindsEnabled: s.BlindsEnabled,
		HostID:        s.HostID,
		You:           viewer,
	}

	if s.Question != nil {
		snap.QuestionText = s.Question.Text
		if hostView || s.answerPublic() {
			snap.CorrectAnswer = s.CorrectAnswer
		}
	}

	for _, id := range s.Order {
		p := s.Players[id]
		if p == nil {
			continue
		}
		ps := PlayerSnapshot{
			ID:             p.ID,
			Name:           p.Name,
			Role:           p.Role,
			AvatarSeed:     p.AvatarSeed,
			Balance:        p.Balance,
			RoundBet:       p.RoundBet,
			Folded:         p.Folded,
			AllIn:          p.AllIn,
			HasAnswered:    p.HasAnswered(),
			AnswerRevealed: p.AnswerRevealed,
			Connected:      p.Connected,
		}
		if p.Answer != nil {
			visible := hostView ||
				p.ID == viewer ||
				p.AnswerRevealed ||
				s.Phase == PhaseShowdown
			if visible {
				answer := *p.Answer
				ps.Answer = &answer
			}
		}
		snap.Players = append(snap.Players, ps)
	}

	for _, a := range s.ActionLog {
		snap.Actions = append(snap.Actions, ActionSnapshot{
			PlayerName: a.PlayerName,
			Kind:       a.Kind,
			Amount:     a.Amount,
			At:         a.At,
		})
	}

	return snap
}
