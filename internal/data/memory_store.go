package data

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rivalradar/rivalradar/internal/core"
)

// MemoryStore keeps reports in an in-process map. It is the fallback backend
// when no durable filesystem is available; contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ core.ReportStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cp
	return nil
}

// Get returns a copy of the stored value, or core.ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Delete removes key. Returns true if it existed.
func (s *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	delete(s.values, key)
	return ok, nil
}

// ListKeys returns all keys starting with prefix.
func (s *MemoryStore) ListKeys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Health always succeeds for the in-memory store.
func (s *MemoryStore) Health(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
