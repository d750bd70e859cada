package store

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore implements Adapter with an in-process map.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Read(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// ErrQuotaExceeded is returned by FailingStore writes.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// FailingStore wraps an Adapter and rejects every write while Fail is set.
// Reads pass through. Useful for exercising best-effort persistence.
type FailingStore struct {
	Adapter
	mu   sync.Mutex
	fail bool
}

// NewFailingStore wraps inner; writes fail until SetFail(false) is called.
func NewFailingStore(inner Adapter) *FailingStore {
	return &FailingStore{Adapter: inner, fail: true}
}

// SetFail toggles write failures.
func (s *FailingStore) SetFail(fail bool) {
	s.mu.Lock()
	s.fail = fail
	s.mu.Unlock()
}

func (s *FailingStore) Write(ctx context.Context, key, value string) error {
	s.mu.Lock()
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return ErrQuotaExceeded
	}
	return s.Adapter.Write(ctx, key, value)
}
