package ports

import (
	"context"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// RecommendationProvider expands one seed track into further candidates
// steered by a target audio-feature vector. Implementations degrade to
// an empty slice on throttling or failure instead of erroring; the
// pipeline never aborts a run over a single expansion.
type RecommendationProvider interface {
	Recommend(ctx context.Context, seedID string, features domain.AudioFeatures, size int) []domain.Track
}
