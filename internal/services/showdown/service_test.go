package showdown

import (
	"math"
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
}

func (s *ServiceSuite) addPlayer(id string, answer string) *model.Player {
	p := &model.Player{
		ID:        model.PlayerID(id),
		Name:      id,
		Role:      model.RoleParticipant,
		Balance:   model.StartingBalance,
		Connected: true,
	}
	if answer != "" {
		p.Answer = &answer
	}
	s.session.Players[p.ID] = p
	s.session.Order = append(s.session.Order, p.ID)
	return p
}

// Numeric resolution tests

func (s *ServiceSuite) TestNumericClosestGuessWins() {
	s.addPlayer("alice", "1960")
	s.addPlayer("bob", "1971")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 200

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal(ModeNumeric, result.Mode)
	s.Equal([]model.PlayerID{"bob"}, result.Winners)
	s.Equal(200, result.Payouts["bob"])
	s.Equal(9.0, result.Distances["alice"])
	s.Equal(2.0, result.Distances["bob"])
}

func (s *ServiceSuite) TestNumericExactGuessWins() {
	s.addPlayer("alice", "1969")
	s.addPlayer("bob", "1970")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{"alice"}, result.Winners)
	s.Equal(0.0, result.Distances["alice"])
}

func (s *ServiceSuite) TestNumericTieSplitsWithRemainderToFirst() {
	s.addPlayer("alice", "1968")
	s.addPlayer("bob", "1970")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 101

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.ElementsMatch([]model.PlayerID{"alice", "bob"}, result.Winners)
	s.Equal(51, result.Payouts["alice"])
	s.Equal(50, result.Payouts["bob"])
}

func (s *ServiceSuite) TestNumericUnparseableGuessLoses() {
	s.addPlayer("alice", "around the sixties")
	s.addPlayer("bob", "1900")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{"bob"}, result.Winners)
	s.True(math.IsInf(result.Distances["alice"], 1))
}

func (s *ServiceSuite) TestNumericNobodyParseableSplitsPot() {
	s.addPlayer("alice", "no idea")
	s.addPlayer("bob", "")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.ElementsMatch([]model.PlayerID{"alice", "bob"}, result.Winners)
	s.Equal(50, result.Payouts["alice"])
	s.Equal(50, result.Payouts["bob"])
}

func (s *ServiceSuite) TestNumericAcceptsThousandsSeparators() {
	s.addPlayer("alice", "10,080")
	s.addPlayer("bob", "9000")
	s.session.CorrectAnswer = "10080"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{"alice"}, result.Winners)
	s.Equal(0.0, result.Distances["alice"])
}

func (s *ServiceSuite) TestNumericIgnoresFoldedPlayers() {
	alice := s.addPlayer("alice", "1969")
	s.addPlayer("bob", "1800")
	alice.Folded = true
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{"bob"}, result.Winners)
}

// Text resolution tests

func (s *ServiceSuite) TestTextMatchIsCaseInsensitive() {
	s.addPlayer("alice", "  CANBERRA ")
	s.addPlayer("bob", "Sydney")
	s.session.CorrectAnswer = "Canberra"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal(ModeText, result.Mode)
	s.Equal([]model.PlayerID{"alice"}, result.Winners)
	s.Equal(100, result.Payouts["alice"])
}

func (s *ServiceSuite) TestTextNobodyRightSplitsPot() {
	s.addPlayer("alice", "Sydney")
	s.addPlayer("bob", "Melbourne")
	s.addPlayer("carol", "")
	s.session.CorrectAnswer = "Canberra"
	s.session.Pot = 90

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Len(result.Winners, 3)
	s.Equal(30, result.Payouts["alice"])
	s.Equal(30, result.Payouts["bob"])
	s.Equal(30, result.Payouts["carol"])
}

func (s *ServiceSuite) TestTextFirstMatcherInJoinOrderWins() {
	s.addPlayer("alice", "canberra")
	s.addPlayer("bob", "Canberra")
	s.addPlayer("carol", "Perth")
	s.session.CorrectAnswer = "Canberra"
	s.session.Pot = 100

	result, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{"alice"}, result.Winners)
	s.Equal(100, result.Payouts["alice"])
	s.Zero(result.Payouts["bob"])
	s.Zero(result.Payouts["carol"])
}

// Fold-out and edge cases

func (s *ServiceSuite) TestFoldOutAwardsWholePot() {
	winner := s.addPlayer("alice", "")
	s.session.Pot = 340

	result := s.service.FoldOut(s.session, winner)

	s.Equal(ModeFoldOut, result.Mode)
	s.Equal([]model.PlayerID{"alice"}, result.Winners)
	s.Equal(340, result.Payouts["alice"])
}

func (s *ServiceSuite) TestResolveWithNoContendersFails() {
	p := s.addPlayer("alice", "1969")
	p.Folded = true
	s.session.CorrectAnswer = "1969"

	_, err := s.service.Resolve(s.session)
	s.ErrorIs(err, model.ErrNoContenders)
}

func (s *ServiceSuite) TestResolveDoesNotTouchBalances() {
	alice := s.addPlayer("alice", "1969")
	s.session.CorrectAnswer = "1969"
	s.session.Pot = 100

	_, err := s.service.Resolve(s.session)
	s.Require().NoError(err)

	s.Equal(model.StartingBalance, alice.Balance)
	s.Equal(100, s.session.Pot)
}
