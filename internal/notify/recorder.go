package notify

import (
	"sync"

	"github.com/quizpoker/quizpoker/internal/model"
)

// Recorded is one captured delivery
type Recorded struct {
	SessionID model.SessionID
	PlayerID  model.PlayerID // empty for broadcasts
	Msg       Message
}

// Recorder is a Notifier that captures deliveries for tests
type Recorder struct {
	mu       sync.Mutex
	messages []Recorded
}

// NewRecorder creates a new recording notifier
func NewRecorder() *Recorder {
	return &Recorder{}
}

var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Broadcast(sessionID model.SessionID, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Recorded{SessionID: sessionID, Msg: msg})
}

func (r *Recorder) Send(sessionID model.SessionID, playerID model.PlayerID, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Recorded{SessionID: sessionID, PlayerID: playerID, Msg: msg})
}

// Messages returns a copy of everything captured so far
func (r *Recorder) Messages() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset clears the captured messages
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
