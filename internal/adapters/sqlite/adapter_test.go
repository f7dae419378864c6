package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open adapter: %v", err)
	}
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}

func TestSaveAndLoadRun(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	run := ports.Run{
		ID:      "run-1",
		Emotion: "joy",
		Score:   0.8,
		Genre:   "pop",
		Tracks: []domain.Recommendation{
			{ID: "t1", Title: "One", Artist: "A", Popularity: 90, SeedTrack: "Seed", SeedArtist: "S"},
			{ID: "t2", Title: "Two", Artist: "B", Popularity: 70},
		},
	}
	if err := adapter.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	runs, err := adapter.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs: got %d, want 1", len(runs))
	}
	got := runs[0]
	if got.Emotion != "joy" || got.Score != 0.8 || got.Genre != "pop" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks: got %d, want 2", len(got.Tracks))
	}
	if got.Tracks[0].ID != "t1" || got.Tracks[0].SeedTrack != "Seed" {
		t.Fatalf("track order or fields wrong: %+v", got.Tracks[0])
	}
}

func TestRecentRunsLimit(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		if err := adapter.SaveRun(ctx, ports.Run{ID: id, Emotion: "joy", Score: 0.5}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	runs, err := adapter.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(runs))
	}
}

func TestUpdateTrackEnergy(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	run := ports.Run{
		ID:      "run-1",
		Emotion: "joy",
		Score:   0.8,
		Tracks:  []domain.Recommendation{{ID: "t1", Title: "One", Artist: "A"}},
	}
	if err := adapter.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	if err := adapter.UpdateTrackEnergy(ctx, "run-1", "t1", 0.42); err != nil {
		t.Fatalf("update energy: %v", err)
	}

	err := adapter.UpdateTrackEnergy(ctx, "run-1", "missing", 0.42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing track: got %v, want ErrNotFound", err)
	}
}
