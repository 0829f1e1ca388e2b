package progress

import "context"

// Store persists progress snapshots. Implementations: SQLite for the real
// game, an in-memory store for tests.
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LoadSnapshot(ctx context.Context) (Snapshot, error)
	Close() error
}
