package itinerary

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a session key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists planner snapshots keyed by session.
// It is the server-side stand-in for the browser's per-user local storage:
// one JSON blob per session key.
type SnapshotRepository interface {
	// Load retrieves the snapshot for a session key.
	// Returns ErrSnapshotNotFound when the key has never been saved.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Save writes the snapshot for a session key, replacing any
	// previous value.
	Save(ctx context.Context, key string, snap *Snapshot) error
}
