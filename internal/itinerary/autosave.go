package itinerary

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAutosaveDelay is the quiescence window before a mutated snapshot
// is written out. A new mutation inside the window restarts the timer, so
// rapid interactions (typing in the trip name field) produce one write.
const DefaultAutosaveDelay = time.Second

// Autosaver debounces snapshot writes per session key. Save failures are
// logged and swallowed; a mutation never fails because storage did.
type Autosaver struct {
	repo   SnapshotRepository
	logger zerolog.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	closed  bool
}

type pendingSave struct {
	timer    *time.Timer
	snapshot *Snapshot
}

// NewAutosaver creates an Autosaver writing to repo after delay of
// quiescence. A non-positive delay falls back to DefaultAutosaveDelay.
func NewAutosaver(repo SnapshotRepository, logger zerolog.Logger, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{
		repo:    repo,
		logger:  logger,
		delay:   delay,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule queues snap for saving after the quiescence window. A pending
// save for the same key is replaced and its timer restarted. The caller
// must not mutate snap after scheduling.
func (a *Autosaver) Schedule(key string, snap *Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	if p, ok := a.pending[key]; ok {
		p.snapshot = snap
		p.timer.Reset(a.delay)
		return
	}

	a.pending[key] = &pendingSave{
		snapshot: snap,
		timer:    time.AfterFunc(a.delay, func() { a.flush(key) }),
	}
}

// Flush writes any pending snapshot for key immediately.
func (a *Autosaver) Flush(key string) {
	a.flush(key)
}

// Close stops all timers and writes every pending snapshot synchronously.
func (a *Autosaver) Close() {
	a.mu.Lock()
	a.closed = true
	remaining := make(map[string]*Snapshot, len(a.pending))
	for key, p := range a.pending {
		p.timer.Stop()
		remaining[key] = p.snapshot
	}
	a.pending = make(map[string]*pendingSave)
	a.mu.Unlock()

	for key, snap := range remaining {
		a.save(key, snap)
	}
}

func (a *Autosaver) flush(key string) {
	a.mu.Lock()
	p, ok := a.pending[key]
	if ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
	a.mu.Unlock()

	if !ok {
		return
	}
	a.save(key, p.snapshot)
}

func (a *Autosaver) save(key string, snap *Snapshot) {
	if err := a.repo.Save(context.Background(), key, snap); err != nil {
		a.logger.Error().
			Err(err).
			Str("session", key).
			Msg("autosave failed, in-memory state retained")
	}
}
