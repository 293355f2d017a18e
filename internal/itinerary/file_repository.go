package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRepository stores one JSON snapshot file per session key under a
// data directory. Writes go through a temp file and rename so a crashed
// save never leaves a truncated snapshot behind.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a file-backed snapshot repository, creating
// the data directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// Load retrieves the snapshot for a session key.
func (r *FileRepository) Load(_ context.Context, key string) (*Snapshot, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Days == nil {
		snap.Days = []Day{}
	}
	return &snap, nil
}

// Save writes the snapshot for a session key.
func (r *FileRepository) Save(_ context.Context, key string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	path := r.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// path maps a session key to a file name, replacing anything that could
// escape the data directory.
func (r *FileRepository) path(key string) string {
	safe := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return c
		case c == '-' || c == '_' || c == '.':
			return c
		}
		return '_'
	}, key)
	return filepath.Join(r.dir, safe+".json")
}

// Ensure FileRepository implements SnapshotRepository.
var _ SnapshotRepository = (*FileRepository)(nil)
