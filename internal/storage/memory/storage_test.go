package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizpoker/quizpoker/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := model.NewSession("ABC123", time.Now())
	session.Pot = 150

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.SessionID("ABC123"), retrieved.ID)
	s.Equal(150, retrieved.Pot)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := model.NewSession("ABC123", time.Now())
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrSessionNotFound)
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
	q := &model.Question{ID: "q-0001", Text: "question", Answer: "42"}

	err := s.storage.SaveQuestion(s.ctx, q)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetQuestion(s.ctx, "q-0001")
	s.Require().NoError(err)
	s.Equal("42", retrieved.Answer)
}

func (s *StorageSuite) TestGetQuestionNotFound() {
	_, err := s.storage.GetQuestion(s.ctx, "q-9999")
	s.ErrorIs(err, model.ErrNoQuestions)
}

func (s *StorageSuite) TestListQuestionsStableOrder() {
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0003", Text: "c", Answer: "3"})
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0001", Text: "a", Answer: "1"})
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0002", Text: "b", Answer: "2"})

	questions, err := s.storage.ListQuestions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(questions, 3)
	s.Equal(model.QuestionID("q-0001"), questions[0].ID)
	s.Equal(model.QuestionID("q-0002"), questions[1].ID)
	s.Equal(model.QuestionID("q-0003"), questions[2].ID)
}

func (s *StorageSuite) TestDeleteQuestion() {
	_ = s.storage.SaveQuestion(s.ctx, &model.Question{ID: "q-0001", Text: "a", Answer: "1"})

	err := s.storage.DeleteQuestion(s.ctx, "q-0001")
	s.Require().NoError(err)

	_, err = s.storage.GetQuestion(s.ctx, "q-0001")
	s.ErrorIs(err, model.ErrNoQuestions)
}
