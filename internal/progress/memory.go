package progress

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the snapshot in memory. Used by tests and by runs where
// no data directory is available.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *MemoryStore) EnsureSchema(ctx context.Context) error { return nil }

// SaveSnapshot stores a copy of snap.
func (s *MemoryStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := Encode(snap)
	if err != nil {
		return err
	}
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	s.snap = decoded
	s.set = true
	return nil
}

// LoadSnapshot returns the stored snapshot, or defaults when nothing was
// saved yet.
func (s *MemoryStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return DefaultSnapshot(), nil
	}
	return s.snap, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
