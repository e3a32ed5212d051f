package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrFlakyRead = errors.New("connection reset by peer")

// FlakyStore wraps a Store and fails the next N reads with ErrFlakyRead, the way
// a remote backend does during a network blip. Writes always pass through.
// Used by tests.
type FlakyStore struct {
	Store

	mutex       sync.Mutex
	failedReads int
}

func NewFlakyStore(inner Store) *FlakyStore {
	return &FlakyStore{
		Store: inner,
	}
}

func (s *FlakyStore) FailNextReads(n int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failedReads = n
}

func (s *FlakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.Lock()
	if s.failedReads > 0 {
		s.failedReads--
		s.mutex.Unlock()
		return nil, ErrFlakyRead
	}
	s.mutex.Unlock()
	return s.Store.Get(ctx, key)
}
