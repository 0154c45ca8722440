package repository

import (
	"context"
	"sync"
	"time"

	"donation_interface/internal/usecase/interfaces"
)

// MemorySessionStore keeps sessions in process memory. It backs the CLI and
// single-instance local runs.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

var _ interfaces.ISessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]map[string]string{}}
}

func (s *MemorySessionStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sessions[namespace][key]
	return v, ok, nil
}

func (s *MemorySessionStore) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[namespace] == nil {
		s.sessions[namespace] = map[string]string{}
	}
	s.sessions[namespace][key] = value
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(keys) == 0 {
		delete(s.sessions, namespace)
		return nil
	}
	for _, k := range keys {
		delete(s.sessions[namespace], k)
	}
	return nil
}

type counterEntry struct {
	stamps    []int64
	expiresAt time.Time
}

// MemoryCounterStore is an in-process ICounterStore.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]counterEntry
	now     func() time.Time
}

var _ interfaces.ICounterStore = (*MemoryCounterStore)(nil)

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{entries: map[string]counterEntry{}, now: time.Now}
}

func (s *MemoryCounterStore) Get(_ context.Context, key string) ([]int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return append([]int64(nil), e.stamps...), true, nil
}

func (s *MemoryCounterStore) Set(_ context.Context, key string, stamps []int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = counterEntry{stamps: append([]int64(nil), stamps...), expiresAt: s.now().Add(ttl)}
	return nil
}
