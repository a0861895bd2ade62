package showdown

import (
	"math"
	"strconv"
	"strings"

	"github.com/quizpoker/quizpoker/internal/model"
)

// Mode names how the winning answer was determined
type Mode string

const (
	// ModeNumeric awards the pot to the closest numeric guess
	ModeNumeric Mode = "numeric"
	// ModeText awards the pot to exact (case-insensitive) matches
	ModeText Mode = "text"
	// ModeFoldOut awards the pot to the last player standing
	ModeFoldOut Mode = "fold_out"
)

// Result is the outcome of resolving a pot
type Result struct {
	Mode      Mode
	Winners   []model.PlayerID
	Payouts   map[model.PlayerID]int
	Distances map[model.PlayerID]float64 // numeric mode only
	Pot       int
}

// Service resolves the pot at the end of a hand
type Service struct{}

// New creates a new showdown service
func New() *Service {
	return &Service{}
}

// FoldOut awards the whole pot to the sole remaining player. It does
// not touch balances; the caller applies payouts.
func (s *Service) FoldOut(session *model.Session, winner *model.Player) Result {
	return Result{
		Mode:    ModeFoldOut,
		Winners: []model.PlayerID{winner.ID},
		Payouts: map[model.PlayerID]int{winner.ID: session.Pot},
		Pot:     session.Pot,
	}
}

// Resolve compares the contenders' answers against the correct answer.
// A numeric correct answer is judged by distance, with ties splitting
// the pot evenly and any remainder going to the earliest winner in
// join order. Anything else is judged by case-insensitive equality,
// with the first exact match in join order taking the whole pot. It
// does not touch balances; the caller applies payouts.
func (s *Service) Resolve(session *model.Session) (Result, error) {
	contenders := session.ActiveParticipants()
	if len(contenders) == 0 {
		return Result{}, model.ErrNoContenders
	}

	if target, err := parseNumber(session.CorrectAnswer); err == nil {
		return s.resolveNumeric(session, contenders, target), nil
	}
	return s.resolveText(session, contenders), nil
}

func (s *Service) resolveNumeric(session *model.Session, contenders []*model.Player, target float64) Result {
	result := Result{
		Mode:      ModeNumeric,
		Distances: make(map[model.PlayerID]float64, len(contenders)),
		Pot:       session.Pot,
	}

	best := math.Inf(1)
	for _, p := range contenders {
		dist := math.Inf(1)
		if p.Answer != nil {
			if guess, err := parseNumber(*p.Answer); err == nil {
				dist = math.Abs(guess - target)
			}
		}
		result.Distances[p.ID] = dist
		if dist < best {
			best = dist
		}
	}

	// Everyone at infinite distance still ties for the pot
	for _, p := range contenders {
		if result.Distances[p.ID] == best || (math.IsInf(best, 1) && math.IsInf(result.Distances[p.ID], 1)) {
			result.Winners = append(result.Winners, p.ID)
		}
	}

	result.Payouts = splitPot(session.Pot, result.Winners)
	return result
}

func (s *Service) resolveText(session *model.Session, contenders []*model.Player) Result {
	result := Result{
		Mode: ModeText,
		Pot:  session.Pot,
	}

	// Matches are exact, so every matcher gave the same answer; the
	// earliest in join order takes the whole pot
	want := normalize(session.CorrectAnswer)
	for _, p := range contenders {
		if p.Answer != nil && normalize(*p.Answer) == want {
			result.Winners = []model.PlayerID{p.ID}
			break
		}
	}

	// Nobody right: the pot splits among everyone still in the hand
	if len(result.Winners) == 0 {
		for _, p := range contenders {
			result.Winners = append(result.Winners, p.ID)
		}
	}

	result.Payouts = splitPot(session.Pot, result.Winners)
	return result
}

// splitPot divides the pot evenly, giving the remainder to the first
// winner. Winners arrive in join order, so the split is deterministic.
func splitPot(pot int, winners []model.PlayerID) map[model.PlayerID]int {
	payouts := make(map[model.PlayerID]int, len(winners))
	if len(winners) == 0 {
		return payouts
	}
	share := pot / len(winners)
	remainder := pot % len(winners)
	for i, id := range winners {
		payouts[id] = share
		if i == 0 {
			payouts[id] += remainder
		}
	}
	return payouts
}

func parseNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Interface for dependency injection
type ServiceInterface interface {
	FoldOut(session *model.Session, winner *model.Player) Result
	Resolve(session *model.Session) (Result, error)
}

var _ ServiceInterface = (*Service)(nil)
