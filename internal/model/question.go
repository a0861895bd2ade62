package model

import "time"

// QuestionID uniquely identifies a question in the pool
type QuestionID string

// Question is a trivia question with a correct answer and ordered hints.
// The answer may be numeric or free text; showdown resolution adapts.
type Question struct {
	ID         QuestionID
	Text       string
	Answer     string
	Hints      []string // ordered, revealed one per hint phase
	Category   string
	Difficulty string
	Used       bool // consumed in the current rotation through the pool
	TimesUsed  int
	CreatedAt  time.Time
}
