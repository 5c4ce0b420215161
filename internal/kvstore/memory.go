package kvstore

import (
	"context"
	"fmt"
	"sync"
)

// DefaultMemoryCapacity mirrors the usual browser local storage budget.
const DefaultMemoryCapacity = 5 * 1024 * 1024

// MemoryStore keeps values in process memory. A positive capacity bounds the
// summed size of all keys and values in bytes.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	capacity int
	used     int
}

// NewMemoryStore creates a MemoryStore. capacity <= 0 means unbounded.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		capacity: capacity,
	}
}

// Get returns the stored value
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores value under key unless it would push the store over capacity
func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + len(key) + len(value)
	if old, ok := s.data[key]; ok {
		used -= len(key) + len(old)
	}

	if s.capacity > 0 && used > s.capacity {
		return fmt.Errorf("failed to set %q (%d of %d bytes): %w", key, used, s.capacity, ErrQuotaExceeded)
	}

	s.data[key] = value
	s.used = used
	return nil
}

// Used reports the number of bytes currently held
func (s *MemoryStore) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
