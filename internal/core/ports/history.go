package ports

import (
	"context"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// Run is one completed recommendation run.
type Run struct {
	ID        string
	Emotion   string
	Score     float64
	Genre     string
	CreatedAt string
	Tracks    []domain.Recommendation
}

// HistoryRepository persists completed runs for the history endpoint
// and the background preview analyzer.
type HistoryRepository interface {
	SaveRun(ctx context.Context, run Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)

	// UpdateTrackEnergy records the analyzed preview energy for one
	// stored track of a run.
	UpdateTrackEnergy(ctx context.Context, runID, trackID string, energy float64) error
}
