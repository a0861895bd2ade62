package question

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/quizpoker/quizpoker/internal/dependencies/clock"
	"github.com/quizpoker/quizpoker/internal/dependencies/random"
	"github.com/quizpoker/quizpoker/internal/model"
	"github.com/quizpoker/quizpoker/internal/storage"
)

// Service manages the trivia question pool
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new question service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// fileQuestion is the seed file form of a question
type fileQuestion struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Answer     string   `json:"answer"`
	Hints      []string `json:"hints"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
}

// LoadFromFile seeds the pool from a JSON file containing an array of
// questions. Existing questions with the same ID are overwritten;
// their used marks reset.
func (s *Service) LoadFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var entries []fileQuestion
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, err
	}

	now := s.clock.Now()
	loaded := 0
	for i, e := range entries {
		if e.Text == "" || e.Answer == "" {
			s.logger.Warn("skipping question with missing text or answer",
				slog.Int("index", i),
			)
			continue
		}
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("q-%04d", i+1)
		}
		q := &model.Question{
			ID:         model.QuestionID(id),
			Text:       e.Text,
			Answer:     e.Answer,
			Hints:      e.Hints,
			Category:   e.Category,
			Difficulty: e.Difficulty,
			CreatedAt:  now,
		}
		if err := s.storage.SaveQuestion(ctx, q); err != nil {
			return loaded, err
		}
		loaded++
	}

	s.logger.Info("question pool loaded",
		slog.String("path", path),
		slog.Int("count", loaded),
	)

	return loaded, nil
}

// Add inserts a single question into the pool
func (s *Service) Add(ctx context.Context, q *model.Question) error {
	if q.Text == "" || q.Answer == "" {
		return model.ErrInvalidAnswer
	}
	if q.ID == "" {
		q.ID = model.QuestionID(s.random.String(8, "abcdefghijklmnopqrstuvwxyz0123456789"))
	}
	q.CreatedAt = s.clock.Now()
	return s.storage.SaveQuestion(ctx, q)
}

// Pick selects a random question that has not been used in the current
// rotation, excluding the given ID so the same question never runs
// twice back to back. When the rotation is exhausted the used marks
// reset and the pool goes around again.
func (s *Service) Pick(ctx context.Context, exclude model.QuestionID) (*model.Question, error) {
	pool, err := s.storage.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, model.ErrNoQuestions
	}

	candidates := eligible(pool, exclude)
	if len(candidates) == 0 {
		// Rotation exhausted: clear the marks and start over
		for _, q := range pool {
			if q.Used {
				q.Used = false
				if err := s.storage.SaveQuestion(ctx, q); err != nil {
					return nil, err
				}
			}
		}
		s.logger.Info("question pool rotation reset",
			slog.Int("pool_size", len(pool)),
		)
		candidates = eligible(pool, exclude)
		if len(candidates) == 0 {
			// Only the excluded question exists; allow the repeat
			candidates = pool
		}
	}

	return candidates[s.random.Intn(len(candidates))], nil
}

// eligible returns the unused questions other than the excluded one
func eligible(pool []*model.Question, exclude model.QuestionID) []*model.Question {
	var out []*model.Question
	for _, q := range pool {
		if !q.Used && q.ID != exclude {
			out = append(out, q)
		}
	}
	return out
}

// MarkUsed records that a question has been dealt
func (s *Service) MarkUsed(ctx context.Context, id model.QuestionID) error {
	q, err := s.storage.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	q.Used = true
	q.TimesUsed++
	return s.storage.SaveQuestion(ctx, q)
}

// Count returns the pool size
func (s *Service) Count(ctx context.Context) (int, error) {
	pool, err := s.storage.ListQuestions(ctx)
	if err != nil {
		return 0, err
	}
	return len(pool), nil
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromFile(ctx context.Context, path string) (int, error)
	Add(ctx context.Context, q *model.Question) error
	Pick(ctx context.Context, exclude model.QuestionID) (*model.Question, error)
	MarkUsed(ctx context.Context, id model.QuestionID) error
	Count(ctx context.Context) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
