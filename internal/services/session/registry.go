package session

import (
	"context"
	"sync"

	"github.com/quizpoker/quizpoker/internal/model"
)

// Registry serializes commands per session. Each session gets its own
// runner goroutine consuming commands from a channel, so two commands
// for the same table can never interleave while different tables run
// concurrently.
type Registry struct {
	mu      sync.Mutex
	runners map[model.SessionID]*runner
	closed  bool
}

type runner struct {
	commands chan command
	done     chan struct{}
}

type command struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[model.SessionID]*runner),
	}
}

// Do runs fn on the session's runner and waits for it to finish. The
// context bounds the wait for a slot and for completion; fn itself
// receives the same context.
func (r *Registry) Do(ctx context.Context, sessionID model.SessionID, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return context.Canceled
	}
	run, ok := r.runners[sessionID]
	if !ok {
		run = &runner{
			commands: make(chan command, 16),
			done:     make(chan struct{}),
		}
		r.runners[sessionID] = run
		go run.loop()
	}
	r.mu.Unlock()

	cmd := command{ctx: ctx, fn: fn, done: make(chan error, 1)}

	// The command channel is never closed; run.done signals shutdown,
	// so a Release or Close racing this send cannot panic it.
	select {
	case run.commands <- cmd:
	case <-run.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-run.done:
		// The runner may have finished or failed the command while
		// shutting down
		select {
		case err := <-cmd.done:
			return err
		default:
			return context.Canceled
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release tears down the runner for a session that no longer exists
func (r *Registry) Release(sessionID model.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run, ok := r.runners[sessionID]; ok {
		close(run.done)
		delete(r.runners, sessionID)
	}
}

// Close stops every runner. Commands already accepted either finish
// or fail with context.Canceled; new calls to Do fail.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for id, run := range r.runners {
		close(run.done)
		delete(r.runners, id)
	}
}

func (run *runner) loop() {
	for {
		select {
		case cmd := <-run.commands:
			run.execute(cmd)
		case <-run.done:
			// Fail whatever is still queued before exiting
			for {
				select {
				case cmd := <-run.commands:
					cmd.done <- context.Canceled
				default:
					return
				}
			}
		}
	}
}

func (run *runner) execute(cmd command) {
	if err := cmd.ctx.Err(); err != nil {
		cmd.done <- err
		return
	}
	cmd.done <- cmd.fn(cmd.ctx)
}
