package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory credential store used in tests and
// single-process development runs.
type MemoryStore struct {
	mu          sync.RWMutex
	credentials map[string]string
}

// NewMemoryStore creates an in-memory credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		credentials: make(map[string]string),
	}
}

// Set stores the credential, overwriting any previous value
func (s *MemoryStore) Set(ctx context.Context, key, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[key] = credential
	return nil
}

// Get returns the stored credential, or "" if absent
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials[key], nil
}

// Clear removes the credential
func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, key)
	return nil
}
