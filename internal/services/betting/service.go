package betting

import (
	"github.com/quizpoker/quizpoker/internal/model"
)

// ActionKind names a betting action in the action log and on the wire
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all_in"
)

// Outcome describes what a betting action did to the table
type Outcome struct {
	Kind   ActionKind
	Amount int // chips moved from the player's balance into the pot
	Raised bool
}

// Service applies betting actions to a session. Validation happens
// before any mutation, so a rejected action leaves the session intact.
type Service struct{}

// New creates a new betting service
func New() *Service {
	return &Service{}
}

// MinimumRaiseFor returns the table minimum raise for the given hand.
// With blind escalation on, the base doubles every few hands; with it
// off, the base applies forever.
func (s *Service) MinimumRaiseFor(handNumber int, blindsEnabled bool) int {
	if !blindsEnabled || handNumber < 1 {
		return model.BaseMinimumRaise
	}
	min := model.BaseMinimumRaise
	for i := (handNumber - 1) / model.BlindEscalationInterval; i > 0; i-- {
		min *= 2
	}
	return min
}

// Fold removes the player from contention for the pot. Chips already
// committed stay in the pot.
func (s *Service) Fold(session *model.Session, player *model.Player) (Outcome, error) {
	if player.Folded {
		return Outcome{}, model.ErrAlreadyFolded
	}
	player.Folded = true
	player.Acted = true
	return Outcome{Kind: ActionFold}, nil
}

// Call matches the current bet. With nothing to match it is a check;
// with too few chips it is a forced all-in for everything the player
// has, which never raises the current bet.
func (s *Service) Call(session *model.Session, player *model.Player) (Outcome, error) {
	if player.Folded {
		return Outcome{}, model.ErrAlreadyFolded
	}

	player.Acted = true

	need := session.CurrentBet - player.RoundBet
	if need <= 0 {
		return Outcome{Kind: ActionCheck}, nil
	}

	if need >= player.Balance {
		amount := player.Balance
		player.Balance = 0
		player.RoundBet += amount
		player.AllIn = true
		session.Pot += amount
		return Outcome{Kind: ActionAllIn, Amount: amount}, nil
	}

	player.Balance -= need
	player.RoundBet += need
	session.Pot += need
	return Outcome{Kind: ActionCall, Amount: need}, nil
}

// Raise matches the current bet and increases it by raiseBy. The
// increment must meet the table minimum unless nobody has bet yet, and
// the full amount must be affordable; going all-in exactly is allowed.
func (s *Service) Raise(session *model.Session, player *model.Player, raiseBy int) (Outcome, error) {
	if player.Folded {
		return Outcome{}, model.ErrAlreadyFolded
	}
	if raiseBy <= 0 {
		return Outcome{}, model.ErrInvalidAmount
	}
	if session.CurrentBet > 0 && raiseBy < session.MinimumRaise {
		return Outcome{}, model.ErrRaiseTooSmall
	}

	need := session.CurrentBet - player.RoundBet
	if need < 0 {
		need = 0
	}
	total := need + raiseBy
	if total > player.Balance {
		return Outcome{}, model.ErrInsufficientBalance
	}

	player.Acted = true
	player.Balance -= total
	player.RoundBet += total
	session.Pot += total
	session.CurrentBet = player.RoundBet

	kind := ActionRaise
	if player.Balance == 0 {
		player.AllIn = true
		kind = ActionAllIn
	}
	return Outcome{Kind: kind, Amount: total, Raised: true}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	MinimumRaiseFor(handNumber int, blindsEnabled bool) int
	Fold(session *model.Session, player *model.Player) (Outcome, error)
	Call(session *model.Session, player *model.Player) (Outcome, error)
	Raise(session *model.Session, player *model.Player, raiseBy int) (Outcome, error)
}

var _ ServiceInterface = (*Service)(nil)
