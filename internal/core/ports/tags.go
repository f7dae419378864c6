package ports

import "context"

// TagProvider is the community tag database. Implementations must treat
// missing entries and transport failures as "does not exist" / "no
// tags" rather than returning errors to the pipeline.
type TagProvider interface {
	// TrackExists reports whether the database knows the track.
	TrackExists(ctx context.Context, artist, track string) bool

	// TrackTags returns the track's top tags, lowercased, best first.
	TrackTags(ctx context.Context, artist, track string) []string

	// ArtistTags returns the artist's top tags, lowercased, best first.
	ArtistTags(ctx context.Context, artist, track string) []string
}
