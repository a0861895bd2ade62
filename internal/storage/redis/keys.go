package redis

import (
	"fmt"

	"github.com/quizpoker/quizpoker/internal/model"
)

// Key prefix for all table data
const keyPrefix = "quizpoker"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// questionKey returns the Redis key for a Question
func questionKey(id model.QuestionID) string {
	return fmt.Sprintf("%s:question:%s", keyPrefix, id)
}

// questionIndexKey returns the Redis key for the SET of question keys
func questionIndexKey() string {
	return fmt.Sprintf("%s:idx:questions", keyPrefix)
}
