package model

// Phase represents the current phase of a hand
type Phase string

const (
	PhaseWaiting      Phase = "waiting"        // No hand in progress
	PhaseAnswering    Phase = "answering"      // Players submitting answers privately
	PhaseBetting1     Phase = "betting_1"      // First betting round
	PhaseHint1        Phase = "hint_1"         // Host may reveal the first hint
	PhaseBetting2     Phase = "betting_2"      // Second betting round
	PhaseHint2        Phase = "hint_2"         // Host may reveal the second hint
	PhaseBetting3     Phase = "betting_3"      // Third betting round
	PhaseAnswerReveal Phase = "answer_reveal"  // Host may reveal the correct answer
	PhaseBetting4     Phase = "betting_4"      // Final betting round
	PhaseShowdown     Phase = "showdown"       // Host may resolve the pot
)

// BettingPhase returns the phase for the given betting round (1-4)
func BettingPhase(round int) (Phase, bool) {
	switch round {
	case 1:
		return PhaseBetting1, true
	case 2:
		return PhaseBetting2, true
	case 3:
		return PhaseBetting3, true
	case 4:
		return PhaseBetting4, true
	default:
		return "", false
	}
}

// HintPhase returns the hint phase that follows the given betting round (1-2)
func HintPhase(round int) (Phase, bool) {
	switch round {
	case 1:
		return PhaseHint1, true
	case 2:
		return PhaseHint2, true
	default:
		return "", false
	}
}

// IsBetting returns true if the phase is one of the four betting rounds
func (p Phase) IsBetting() bool {
	_, ok := p.BettingRound()
	return ok
}

// BettingRound returns the betting round number for a betting phase
func (p Phase) BettingRound() (int, bool) {
	switch p {
	case PhaseBetting1:
		return 1, true
	case PhaseBetting2:
		return 2, true
	case PhaseBetting3:
		return 3, true
	case PhaseBetting4:
		return 4, true
	default:
		return 0, false
	}
}

// HintRound returns the betting round that precedes a hint phase
func (p Phase) HintRound() (int, bool) {
	switch p {
	case PhaseHint1:
		return 1, true
	case PhaseHint2:
		return 2, true
	default:
		return 0, false
	}
}
