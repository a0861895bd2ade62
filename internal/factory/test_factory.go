package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/quizpoker/quizpoker/internal/dependencies/mocks"
	"github.com/quizpoker/quizpoker/internal/model"
	"github.com/quizpoker/quizpoker/internal/storage/memory"
	"github.com/quizpoker/quizpoker/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedTestQuestions loads a small question pool for testing
func (t *TestApp) SeedTestQuestions() error {
	questions := []*model.Question{
		{
			ID:     "q-0001",
			Text:   "In what year did the first person walk on the Moon?",
			Answer: "1969",
			Hints: []string{
				"It was during the 1960s.",
				"Richard Nixon was the US president at the time.",
			},
			Category:   "history",
			Difficulty: "easy",
		},
		{
			ID:     "q-0002",
			Text:   "How many bones are in the adult human body?",
			Answer: "206",
			Hints: []string{
				"It is an even number between 150 and 250.",
				"Babies are born with around 300; many fuse together.",
			},
			Category:   "science",
			Difficulty: "medium",
		},
		{
			ID:     "q-0003",
			Text:   "What is the capital of Australia?",
			Answer: "Canberra",
			Hints: []string{
				"It is not the largest city.",
				"It was purpose-built as a compromise between two rivals.",
			},
			Category:   "geography",
			Difficulty: "medium",
		},
	}

	ctx := context.Background()
	for _, q := range questions {
		if err := t.QuestionService.Add(ctx, q); err != nil {
			return fmt.Errorf("failed to seed question %s: %w", q.ID, err)
		}
	}
	return nil
}
