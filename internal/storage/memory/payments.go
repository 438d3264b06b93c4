package memory

import (
	"context"
	"sync"

	"cko-gateway/internal/domain"
	"cko-gateway/pkg/e"
)

// Store keeps payment records in a process-local map. It is the
// reference implementation; production wires the pg store behind the
// same interface. Writes are keyed by freshly generated ids and never
// race on a key, but concurrent inserts and reads still need the lock.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.PaymentRecord
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.PaymentRecord),
	}
}

func (s *Store) Add(_ context.Context, record domain.PaymentRecord) error {
	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(_ context.Context, id string) (domain.PaymentRecord, error) {
	s.mu.RLock()
	record, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return domain.PaymentRecord{}, e.ErrNotFound
	}
	return record, nil
}
