package memory

import (
	"context"
	"sync"
)

// KeyStore is the in-memory committed-idempotency-key set. Keys are
// case-sensitive and never expire.
type KeyStore struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewKeyStore() *KeyStore {
	return &KeyStore{
		keys: make(map[string]struct{}),
	}
}

func (s *KeyStore) Contains(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.keys[key]
	s.mu.RUnlock()
	return ok, nil
}

func (s *KeyStore) Add(_ context.Context, key string) error {
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
	return nil
}
