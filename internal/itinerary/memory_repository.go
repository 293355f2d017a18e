package itinerary

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory SnapshotRepository for tests and
// ephemeral deployments.
type InMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewInMemoryRepository creates a new in-memory snapshot repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{snapshots: make(map[string]*Snapshot)}
}

// Load retrieves the snapshot for a session key.
func (r *InMemoryRepository) Load(_ context.Context, key string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.snapshots[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap.Clone(), nil
}

// Save writes the snapshot for a session key.
func (r *InMemoryRepository) Save(_ context.Context, key string, snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[key] = snap.Clone()
	return nil
}

// Ensure InMemoryRepository implements SnapshotRepository.
var _ SnapshotRepository = (*InMemoryRepository)(nil)
