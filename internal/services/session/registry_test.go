package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
	s.ctx = context.Background()
}

func (s *RegistrySuite) TearDownTest() {
	s.registry.Close()
}

func (s *RegistrySuite) TestDoRunsFunction() {
	ran := false
	err := s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error {
		ran = true
		return nil
	})
	s.Require().NoError(err)
	s.True(ran)
}

func (s *RegistrySuite) TestDoPropagatesError() {
	want := errors.New("boom")
	err := s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error {
		return want
	})
	s.ErrorIs(err, want)
}

func (s *RegistrySuite) TestCommandsForOneSessionNeverInterleave() {
	const workers = 16
	const increments = 50

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				_ = s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error {
					// Unsynchronized on purpose: the runner is the lock
					counter++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	s.Equal(workers*increments, counter)
}

func (s *RegistrySuite) TestSessionsRunIndependently() {
	blocked := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = s.registry.Do(s.ctx, "SLOW01", func(ctx context.Context) error {
			close(blocked)
			<-release
			return nil
		})
	}()
	<-blocked

	// A different session is not stuck behind the slow one
	err := s.registry.Do(s.ctx, "FAST01", func(ctx context.Context) error {
		return nil
	})
	s.NoError(err)

	close(release)
}

func (s *RegistrySuite) TestCloseWithConcurrentCommandsDoesNotPanic() {
	const workers = 8

	var wg sync.WaitGroup
	var once sync.Once
	started := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				err := s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error {
					return nil
				})
				if err != nil {
					// Shutdown is the only failure mode here
					s.ErrorIs(err, context.Canceled)
					return
				}
				once.Do(func() { close(started) })
			}
		}()
	}

	<-started
	s.registry.Close()
	wg.Wait()
}

func (s *RegistrySuite) TestDoAfterCloseFails() {
	s.registry.Close()
	err := s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error {
		return nil
	})
	s.ErrorIs(err, context.Canceled)
}

func (s *RegistrySuite) TestCancelledContextFails() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.registry.Do(ctx, "ABC123", func(ctx context.Context) error {
		return nil
	})
	s.ErrorIs(err, context.Canceled)
}

func (s *RegistrySuite) TestReleaseAllowsRecreation() {
	err := s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error { return nil })
	s.Require().NoError(err)

	s.registry.Release("ABC123")

	err = s.registry.Do(s.ctx, "ABC123", func(ctx context.Context) error { return nil })
	s.NoError(err)
}
