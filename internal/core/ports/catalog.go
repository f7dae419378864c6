package ports

import (
	"context"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// CatalogProvider is the track search and metadata source. Queries may
// carry a trailing genre hashtag; results arrive in catalog order.
type CatalogProvider interface {
	// SearchTracks runs a free-text track search and returns up to
	// limit raw hits.
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error)

	// GetTrack fetches track detail (album name, preview clip URL) by
	// catalog ID.
	GetTrack(ctx context.Context, id string) (domain.TrackDetail, error)

	// GetArtistTopTracks lists an artist's top tracks for a market.
	GetArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error)
}
