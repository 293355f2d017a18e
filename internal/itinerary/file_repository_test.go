package itinerary_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wanderdesk/wanderdesk/internal/itinerary"
)

func TestFileRepository_RoundTrip(t *testing.T) {
	repo, err := itinerary.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	ctx := context.Background()

	snap := itinerary.NewSnapshot()
	snap.TripName = "Tokyo"
	snap.Days = []itinerary.Day{
		{
			ID:   1,
			Date: itinerary.NewDate(2024, time.March, 1),
			Activities: []itinerary.Activity{
				{ID: "act_1", Title: "Museum", Category: itinerary.CategoryAttraction, Cost: "20"},
			},
		},
	}

	if err := repo.Save(ctx, "ses_abc", snap); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := repo.Load(ctx, "ses_abc")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.TripName != "Tokyo" {
		t.Errorf("expected trip name Tokyo, got %q", loaded.TripName)
	}
	if len(loaded.Days) != 1 || len(loaded.Days[0].Activities) != 1 {
		t.Fatalf("unexpected loaded days: %+v", loaded.Days)
	}
	if loaded.Days[0].Activities[0].Title != "Museum" {
		t.Errorf("unexpected activity: %+v", loaded.Days[0].Activities[0])
	}
	if !loaded.Days[0].Date.Equal(itinerary.NewDate(2024, time.March, 1)) {
		t.Errorf("unexpected date: %s", loaded.Days[0].Date)
	}
}

func TestFileRepository_NotFound(t *testing.T) {
	repo, err := itinerary.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	_, err = repo.Load(context.Background(), "ses_missing")
	if !errors.Is(err, itinerary.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestFileRepository_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := itinerary.NewFileRepository(dir)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "ses_bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, err = repo.Load(context.Background(), "ses_bad")
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
	if errors.Is(err, itinerary.ErrSnapshotNotFound) {
		t.Fatal("corrupt snapshot should not read as not-found")
	}
}

func TestFileRepository_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	repo, err := itinerary.NewFileRepository(dir)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	ctx := context.Background()

	// A hostile key must not escape the data directory.
	key := "../../etc/passwd"
	if err := repo.Save(ctx, key, itinerary.NewSnapshot()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in data dir, got %d", len(entries))
	}

	loaded, err := repo.Load(ctx, key)
	if err != nil {
		t.Fatalf("failed to load with sanitized key: %v", err)
	}
	if loaded.Days == nil {
		t.Error("expected non-nil day collection")
	}
}

func TestFileRepository_OverwriteReplaces(t *testing.T) {
	repo, err := itinerary.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	ctx := context.Background()

	first := itinerary.NewSnapshot()
	first.TripName = "first"
	if err := repo.Save(ctx, "s1", first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	second := itinerary.NewSnapshot()
	second.TripName = "second"
	if err := repo.Save(ctx, "s1", second); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	loaded, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.TripName != "second" {
		t.Errorf("expected second snapshot, got %q", loaded.TripName)
	}
}
