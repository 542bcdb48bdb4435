package session

import (
	"context"
	"sync"
	"time"
)

// StateStore is the durable mirror of one session's running flag and start
// time. Both fields are written and cleared together; no partial state may
// survive a crash.
type StateStore interface {
	// Load returns the persisted state. running is false when nothing is
	// stored. A true running flag with a zero start time indicates an
	// inconsistent record; callers must fall back to idle.
	Load(ctx context.Context) (running bool, start time.Time, err error)
	// Save marks the session running from start.
	Save(ctx context.Context, start time.Time) error
	// Clear removes the persisted state. Idempotent.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-memory StateStore for tests and ephemeral setups.
type MemoryStore struct {
	mu      sync.Mutex
	running bool
	start   time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (bool, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.start, nil
}

func (s *MemoryStore) Save(ctx context.Context, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.start = start
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.start = time.Time{}
	return nil
}

// SetInconsistent forces a running flag without a start time, mimicking a
// corrupted store for bootstrap tests.
func (s *MemoryStore) SetInconsistent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.start = time.Time{}
}
