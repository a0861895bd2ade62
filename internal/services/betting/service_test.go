package betting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizpoker/quizpoker/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	session *model.Session
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.session = model.NewSession("ABC123", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.session.MinimumRaise = model.BaseMinimumRaise
}

func (s *ServiceSuite) addPlayer(id string, balance int) *model.Player {
	p := &model.Player{
		ID:        model.PlayerID(id),
		Name:      id,
		Role:      model.RoleParticipant,
		Balance:   balance,
		Connected: true,
	}
	s.session.Players[p.ID] = p
	s.session.Order = append(s.session.Order, p.ID)
	return p
}

// MinimumRaiseFor tests

func (s *ServiceSuite) TestMinimumRaiseBase() {
	s.Equal(20, s.service.MinimumRaiseFor(1, true))
	s.Equal(20, s.service.MinimumRaiseFor(2, true))
	s.Equal(20, s.service.MinimumRaiseFor(3, true))
}

func (s *ServiceSuite) TestMinimumRaiseDoublesEveryInterval() {
	s.Equal(40, s.service.MinimumRaiseFor(4, true))
	s.Equal(40, s.service.MinimumRaiseFor(6, true))
	s.Equal(80, s.service.MinimumRaiseFor(7, true))
	s.Equal(160, s.service.MinimumRaiseFor(10, true))
}

func (s *ServiceSuite) TestMinimumRaiseFlatWhenBlindsDisabled() {
	s.Equal(20, s.service.MinimumRaiseFor(1, false))
	s.Equal(20, s.service.MinimumRaiseFor(10, false))
	s.Equal(20, s.service.MinimumRaiseFor(100, false))
}

// Fold tests

func (s *ServiceSuite) TestFoldLeavesCommittedChipsInPot() {
	p := s.addPlayer("alice", 900)
	p.RoundBet = 100
	s.session.Pot = 100

	outcome, err := s.service.Fold(s.session, p)
	s.Require().NoError(err)

	s.Equal(ActionFold, outcome.Kind)
	s.True(p.Folded)
	s.Equal(900, p.Balance)
	s.Equal(100, s.session.Pot)
}

func (s *ServiceSuite) TestFoldTwiceFails() {
	p := s.addPlayer("alice", 1000)
	_, err := s.service.Fold(s.session, p)
	s.Require().NoError(err)

	_, err = s.service.Fold(s.session, p)
	s.ErrorIs(err, model.ErrAlreadyFolded)
}

// Call tests

func (s *ServiceSuite) TestCallWithNothingToMatchIsCheck() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 0

	outcome, err := s.service.Call(s.session, p)
	s.Require().NoError(err)

	s.Equal(ActionCheck, outcome.Kind)
	s.Equal(0, outcome.Amount)
	s.Equal(1000, p.Balance)
	s.Equal(0, s.session.Pot)
}

func (s *ServiceSuite) TestCallMatchesCurrentBet() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 50

	outcome, err := s.service.Call(s.session, p)
	s.Require().NoError(err)

	s.Equal(ActionCall, outcome.Kind)
	s.Equal(50, outcome.Amount)
	s.Equal(950, p.Balance)
	s.Equal(50, p.RoundBet)
	s.Equal(50, s.session.Pot)
}

func (s *ServiceSuite) TestCallOnlyPaysTheShortfall() {
	p := s.addPlayer("alice", 1000)
	p.RoundBet = 20
	s.session.CurrentBet = 50

	outcome, err := s.service.Call(s.session, p)
	s.Require().NoError(err)

	s.Equal(30, outcome.Amount)
	s.Equal(970, p.Balance)
	s.Equal(50, p.RoundBet)
}

func (s *ServiceSuite) TestCallShortStackIsForcedAllIn() {
	p := s.addPlayer("alice", 30)
	s.session.CurrentBet = 50

	outcome, err := s.service.Call(s.session, p)
	s.Require().NoError(err)

	s.Equal(ActionAllIn, outcome.Kind)
	s.Equal(30, outcome.Amount)
	s.Equal(0, p.Balance)
	s.Equal(30, p.RoundBet)
	s.True(p.AllIn)
	// A forced all-in call never raises the bet to match
	s.Equal(50, s.session.CurrentBet)
}

func (s *ServiceSuite) TestCallAfterFoldingFails() {
	p := s.addPlayer("alice", 1000)
	p.Folded = true

	_, err := s.service.Call(s.session, p)
	s.ErrorIs(err, model.ErrAlreadyFolded)
}

// Raise tests

func (s *ServiceSuite) TestRaiseOpensBetting() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 0

	outcome, err := s.service.Raise(s.session, p, 50)
	s.Require().NoError(err)

	s.Equal(ActionRaise, outcome.Kind)
	s.True(outcome.Raised)
	s.Equal(50, outcome.Amount)
	s.Equal(950, p.Balance)
	s.Equal(50, s.session.CurrentBet)
	s.Equal(50, s.session.Pot)
}

func (s *ServiceSuite) TestRaiseMatchesThenIncreases() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 50

	outcome, err := s.service.Raise(s.session, p, 30)
	s.Require().NoError(err)

	s.Equal(80, outcome.Amount)
	s.Equal(920, p.Balance)
	s.Equal(80, p.RoundBet)
	s.Equal(80, s.session.CurrentBet)
}

func (s *ServiceSuite) TestEveryActionMarksPlayerActed() {
	checker := s.addPlayer("alice", 1000)
	raiser := s.addPlayer("bob", 1000)
	folder := s.addPlayer("carol", 1000)

	_, err := s.service.Call(s.session, checker)
	s.Require().NoError(err)
	_, err = s.service.Raise(s.session, raiser, 50)
	s.Require().NoError(err)
	_, err = s.service.Fold(s.session, folder)
	s.Require().NoError(err)

	s.True(checker.Acted)
	s.True(raiser.Acted)
	s.True(folder.Acted)
}

func (s *ServiceSuite) TestRaiseBelowMinimumFails() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 50
	s.session.MinimumRaise = 40

	_, err := s.service.Raise(s.session, p, 30)
	s.ErrorIs(err, model.ErrRaiseTooSmall)
	s.Equal(1000, p.Balance)
	s.Equal(0, s.session.Pot)
}

func (s *ServiceSuite) TestOpeningBetBelowMinimumAllowed() {
	p := s.addPlayer("alice", 1000)
	s.session.CurrentBet = 0
	s.session.MinimumRaise = 40

	_, err := s.service.Raise(s.session, p, 10)
	s.Require().NoError(err)
	s.Equal(10, s.session.CurrentBet)
}

func (s *ServiceSuite) TestRaiseZeroFails() {
	p := s.addPlayer("alice", 1000)

	_, err := s.service.Raise(s.session, p, 0)
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *ServiceSuite) TestRaiseBeyondBalanceFails() {
	p := s.addPlayer("alice", 60)
	s.session.CurrentBet = 50

	_, err := s.service.Raise(s.session, p, 20)
	s.ErrorIs(err, model.ErrInsufficientBalance)
	s.Equal(60, p.Balance)
	s.Equal(0, s.session.Pot)
}

func (s *ServiceSuite) TestRaiseExactlyAllInAllowed() {
	p := s.addPlayer("alice", 70)
	s.session.CurrentBet = 50

	outcome, err := s.service.Raise(s.session, p, 20)
	s.Require().NoError(err)

	s.Equal(ActionAllIn, outcome.Kind)
	s.True(outcome.Raised)
	s.Equal(0, p.Balance)
	s.True(p.AllIn)
	s.Equal(70, s.session.CurrentBet)
}
