package turn

import (
	"github.com/quizpoker/quizpoker/internal/model"
)

// Service decides who acts next in a betting round and when the round
// is complete.
type Service struct{}

// New creates a new turn service
func New() *Service {
	return &Service{}
}

// FirstActor returns the player who opens a betting round: the first
// participant in join order able to act. ok is false when nobody can
// act at all.
func (s *Service) FirstActor(session *model.Session) (model.PlayerID, bool) {
	for _, id := range session.Order {
		p := session.Players[id]
		if p != nil && p.IsParticipant() && p.CanAct() {
			return id, true
		}
	}
	return "", false
}

// NextActor returns the next player after `from` able to act, scanning
// the turn order at most twice so a table with nobody eligible cannot
// loop forever.
func (s *Service) NextActor(session *model.Session, from model.PlayerID) (model.PlayerID, bool) {
	n := len(session.Order)
	if n == 0 {
		return "", false
	}
	start := session.OrderIndex(from)
	if start < 0 {
		start = 0
	}
	for step := 1; step <= 2*n; step++ {
		id := session.Order[(start+step)%n]
		p := session.Players[id]
		if p == nil || !p.IsParticipant() {
			continue
		}
		if id == from {
			return "", false
		}
		if p.CanAct() {
			return id, true
		}
	}
	return "", false
}

// Advance computes the next active player after the current actor has
// finished. complete is true when the betting round is over:
//   - one or zero non-folded players remain,
//   - nobody can act (everyone remaining is all-in),
//   - exactly one player can act and they have matched the current bet, or
//   - everyone still able to act has acted this round and matched the
//     current bet.
//
// Closure is judged from per-player acted flags, not from whoever
// opened the round, so an opener folding or disconnecting mid-round
// cannot strand the round without a terminating condition.
func (s *Service) Advance(session *model.Session) (next model.PlayerID, complete bool) {
	contenders := session.ActiveParticipants()
	if len(contenders) <= 1 {
		return "", true
	}

	actionable := 0
	var soleActor *model.Player
	for _, p := range contenders {
		if p.CanAct() {
			actionable++
			soleActor = p
		}
	}
	if actionable == 0 {
		return "", true
	}
	if actionable == 1 && soleActor.RoundBet >= session.CurrentBet {
		return "", true
	}

	next, ok := s.NextActor(session, session.ActivePlayer)
	if !ok {
		return "", true
	}

	if s.roundClosed(contenders, session.CurrentBet) {
		return "", true
	}

	return next, false
}

// roundClosed reports whether every contender still able to act has
// acted this round and put in the current bet. A raise lifts the
// current bet above every other commitment, so it reopens the round
// without the flags needing to clear.
func (s *Service) roundClosed(contenders []*model.Player, currentBet int) bool {
	for _, p := range contenders {
		if !p.CanAct() {
			continue
		}
		if !p.Acted || p.RoundBet < currentBet {
			return false
		}
	}
	return true
}

// Interface for dependency injection
type ServiceInterface interface {
	FirstActor(session *model.Session) (model.PlayerID, bool)
	NextActor(session *model.Session, from model.PlayerID) (model.PlayerID, bool)
	Advance(session *model.Session) (next model.PlayerID, complete bool)
}

var _ ServiceInterface = (*Service)(nil)
