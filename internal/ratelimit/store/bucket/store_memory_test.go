package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 3
	testWindow = time.Minute
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	clock time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.clock = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestAllow() {
	s.Run("requests up to the limit", func() {
		for i := range testLimit {
			res, err := s.store.Allow(s.ctx, "ip:up-to", testLimit, testWindow)
			s.Require().NoError(err)
			s.True(res.Allowed)
			s.Equal(testLimit-1-i, res.Remaining)
			s.Equal(s.clock.Add(testWindow), res.ResetAt)
		}
	})

	s.Run("over the limit denied", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "ip:over", testLimit, testWindow)
			s.Require().NoError(err)
		}
		res, err := s.store.Allow(s.ctx, "ip:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(res.Allowed)
		s.Zero(res.Remaining)
		s.Equal(testLimit, res.Limit)
	})

	s.Run("keys are independent", func() {
		res, err := s.store.Allow(s.ctx, "ip:other", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(res.Allowed)
	})
}

func (s *InMemoryStoreSuite) TestWindowSlides() {
	start := s.clock
	for range testLimit {
		_, err := s.store.Allow(s.ctx, "ip:slide", testLimit, testWindow)
		s.Require().NoError(err)
		s.clock = s.clock.Add(10 * time.Second)
	}

	denied, err := s.store.Allow(s.ctx, "ip:slide", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(denied.Allowed)
	s.Equal(start.Add(testWindow), denied.ResetAt)

	// The first request leaves the window once a full minute has passed.
	s.clock = start.Add(testWindow + time.Second)
	res, err := s.store.Allow(s.ctx, "ip:slide", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(res.Allowed)
	s.Zero(res.Remaining)
}

func (s *InMemoryStoreSuite) TestResetAndSweep() {
	_, err := s.store.Allow(s.ctx, "ip:reset", 1, testWindow)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(s.ctx, "ip:reset"))
	res, err := s.store.Allow(s.ctx, "ip:reset", 1, testWindow)
	s.Require().NoError(err)
	s.True(res.Allowed)

	s.clock = s.clock.Add(2 * testWindow)
	s.store.Sweep()
	s.Empty(s.store.buckets)
}

func (s *InMemoryStoreSuite) TestConcurrentAllow() {
	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.store.Allow(s.ctx, "ip:race", testLimit, testWindow)
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(testLimit, allowed)
}
