package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the backing key-value storage for the resilient cache. Each key
// has a primary slot with TTL and a fallback "last known good" slot with no
// automatic expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetFallback(ctx context.Context, key string) ([]byte, bool, error)
	SetFallback(ctx context.Context, key string, value []byte) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	fallback map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		fallback: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{data: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetFallback(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	data, ok := s.fallback[key]
	s.mu.RUnlock()
	return data, ok, nil
}

func (s *MemoryStore) SetFallback(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.fallback[key] = value
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
