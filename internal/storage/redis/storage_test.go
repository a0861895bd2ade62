package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/quizpoker/quizpoker/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := model.NewSession("ABC123", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	session.Pot = 150
	session.Phase = model.PhaseBetting2
	session.Players["alice"] = &model.Player{
		ID:        "alice",
		Name:      "Alice",
		Role:      model.RoleParticipant,
		Balance:   850,
		Connected: true,
	}
	session.Order = []model.PlayerID{"alice"}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.PhaseBetting2, retrieved.Phase)
	s.Equal(150, retrieved.Pot)
	s.Require().NotNil(retrieved.Player("alice"))
	s.Equal(850, retrieved.Player("alice").Balance)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionTTL() {
	session := model.NewSession("ABC123", time.Now())
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetSession(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, model.NewSession("ABC123", time.Now()))

	err := s.storage.DeleteSession(s.ctx, "ABC123")
	s.Require().NoError(err)

	exists, err := s.storage.SessionExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, model.NewSession("ABC123", time.Now()))

	exists, err = s.storage.SessionExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

// Question tests

func (s *StorageSuite) TestSaveAndGetQuestion() {
	q := &model.Question{
		ID:     "q-0001",
		Text:   "question",
		Answer: "42",
		Hints:  []string{"h1", "h2"},
	}

	err := s.storage.SaveQuestion(s.ctx, q)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetQuestion(s.ctx, "q-0001")
	s.Require().NoError(err)
	s.Equal("42", retrieved.Answer)
	s.Len(retrieved.Hints, 2)
}

func (s *StorageSuite) TestGetQuestionNotFound() {
	_, err := s.storage.GetQuestion(s.ctx, "q-9999")
	s.ErrorIs(err, model.ErrNoQuestions)
}

func (s *StorageSuite) TestQuestionsSurviveSessionExpiry() {
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0001", Text: "a", Answer: "1"})

	s.mini.FastForward(48 * time.Hour)

	_, err := s.storage.GetQuestion(s.ctx, "q-0001")
	s.NoError(err)
}

func (s *StorageSuite) TestListQuestionsStableOrder() {
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0002", Text: "b", Answer: "2"})
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0001", Text: "a", Answer: "1"})

	questions, err := s.storage.ListQuestions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(questions, 2)
	s.Equal(model.QuestionID("q-0001"), questions[0].ID)
	s.Equal(model.QuestionID("q-0002"), questions[1].ID)
}

func (s *StorageSuite) TestListQuestionsEmpty() {
	questions, err := s.storage.ListQuestions(s.ctx)
	s.Require().NoError(err)
	s.Empty(questions)
}

func (s *StorageSuite) TestDeleteQuestionRemovesFromIndex() {
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0001", Text: "a", Answer: "1"})
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0002", Text: "b", Answer: "2"})

	err := s.storage.DeleteQuestion(s.ctx, "q-0001")
	s.Require().NoError(err)

	questions, err := s.storage.ListQuestions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(questions, 1)
	s.Equal(model.QuestionID("q-0002"), questions[0].ID)
}
