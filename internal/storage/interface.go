package storage

import (
	"context"

	"github.com/quizpoker/quizpoker/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)

	// Question pool operations
	SaveQuestion(ctx context.Context, question *model.Question) error
	GetQuestion(ctx context.Context, id model.QuestionID) (*model.Question, error)
	ListQuestions(ctx context.Context) ([]*model.Question, error)
	DeleteQuestion(ctx context.Context, id model.QuestionID) error
}
