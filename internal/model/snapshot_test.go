package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SnapshotSuite struct {
	suite.Suite
	session *Session
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) SetupTest() {
	s.session = NewSession("ABC123", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	host := &Player{ID: "host-1", Name: "Host", Role: RoleHost, Connected: true}
	s.session.Players["host-1"] = host
	s.session.HostID = "host-1"

	for _, id := range []PlayerID{"alice", "bob"} {
		answer := "guess-" + string(id)
		s.session.Players[id] = &Player{
			ID:        id,
			Name:      string(id),
			Role:      RoleParticipant,
			Balance:   StartingBalance,
			Connected: true,
			Answer:    &answer,
		}
		s.session.Order = append(s.session.Order, id)
	}

	s.session.Question = &Question{ID: "q-0001", Text: "the question", Answer: "42"}
	s.session.CorrectAnswer = "42"
	s.session.Phase = PhaseBetting1
}

func (s *SnapshotSuite) playerSnap(snap Snapshot, id PlayerID) PlayerSnapshot {
	for _, p := range snap.Players {
		if p.ID == id {
			return p
		}
	}
	s.FailNow("player not in snapshot", string(id))
	return PlayerSnapshot{}
}

func (s *SnapshotSuite) TestParticipantSeesOnlyOwnAnswer() {
	snap := SnapshotFor(s.session, "alice")

	own := s.playerSnap(snap, "alice")
	s.Require().NotNil(own.Answer)
	s.Equal("guess-alice", *own.Answer)

	other := s.playerSnap(snap, "bob")
	s.Nil(other.Answer)
	s.True(other.HasAnswered)
}

func (s *SnapshotSuite) TestHostSeesAllAnswers() {
	snap := SnapshotFor(s.session, "host-1")

	s.NotNil(s.playerSnap(snap, "alice").Answer)
	s.NotNil(s.playerSnap(snap, "bob").Answer)
	s.Equal("42", snap.CorrectAnswer)
}

func (s *SnapshotSuite) TestSpectatorSeesNoAnswers() {
	snap := SnapshotFor(s.session, "")

	s.Nil(s.playerSnap(snap, "alice").Answer)
	s.Nil(s.playerSnap(snap, "bob").Answer)
	s.Empty(snap.CorrectAnswer)
	s.Equal("the question", snap.QuestionText)
}

func (s *SnapshotSuite) TestCorrectAnswerHiddenUntilFinalRound() {
	for _, phase := range []Phase{PhaseAnswering, PhaseBetting1, PhaseHint1, PhaseBetting3, PhaseAnswerReveal} {
		s.session.Phase = phase
		s.Empty(SnapshotFor(s.session, "alice").CorrectAnswer, string(phase))
	}
	for _, phase := range []Phase{PhaseBetting4, PhaseShowdown} {
		s.session.Phase = phase
		s.Equal("42", SnapshotFor(s.session, "alice").CorrectAnswer, string(phase))
	}
}

func (s *SnapshotSuite) TestAllAnswersVisibleAtShowdown() {
	s.session.Phase = PhaseShowdown
	snap := SnapshotFor(s.session, "alice")

	s.NotNil(s.playerSnap(snap, "bob").Answer)
}

func (s *SnapshotSuite) TestVoluntarilyRevealedAnswerVisible() {
	s.session.Players["bob"].AnswerRevealed = true
	snap := SnapshotFor(s.session, "alice")

	bob := s.playerSnap(snap, "bob")
	s.Require().NotNil(bob.Answer)
	s.Equal("guess-bob", *bob.Answer)
}

func (s *SnapshotSuite) TestSnapshotCopiesAnswer() {
	snap := SnapshotFor(s.session, "alice")
	own := s.playerSnap(snap, "alice")
	*own.Answer = "mutated"

	s.Equal("guess-alice", *s.session.Players["alice"].Answer)
}

func (s *SnapshotSuite) TestHostNotListedAmongPlayers() {
	snap := SnapshotFor(s.session, "")

	s.Len(snap.Players, 2)
	s.Equal(PlayerID("host-1"), snap.HostID)
}
