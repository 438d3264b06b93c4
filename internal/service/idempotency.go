package service

import (
	"context"
	"sync"

	"cko-gateway/pkg/e"
)

// Guard owns the idempotency check-then-act window. Committed keys live
// in the KeyStore; keys whose bank call is still in flight are held in
// a process-local set so a racing caller with the same key observes the
// conflict before any bank traffic, not after its own round-trip.
type Guard struct {
	keys KeyStore

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGuard(keys KeyStore) *Guard {
	return &Guard{
		keys:     keys,
		inFlight: make(map[string]struct{}),
	}
}

// Acquire reserves the key for the calling request. It fails with an
// IdempotencyConflictError when the key already completed a submission
// or another request holds it right now.
func (g *Guard) Acquire(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.inFlight[key]; held {
		return &IdempotencyConflictError{Key: key}
	}

	used, err := g.keys.Contains(ctx, key)
	if err != nil {
		return e.Wrap("idempotency.Acquire", err)
	}
	if used {
		return &IdempotencyConflictError{Key: key}
	}

	g.inFlight[key] = struct{}{}
	return nil
}

// Commit registers the key as used and drops the reservation. Called
// only after the payment record was persisted. If the key write fails
// the reservation is kept: blocking a retry beats a double charge.
func (g *Guard) Commit(ctx context.Context, key string) error {
	if err := g.keys.Add(ctx, key); err != nil {
		return e.Wrap("idempotency.Commit", err)
	}
	g.Release(key)
	return nil
}

// Release frees the reservation without registering the key, so a
// failed submission can be retried with the same key.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}
