package domain

import "errors"

var ErrNotFound = errors.New("domain: not found")

// Track represents a musical track in the domain layer. Instances are
// passed by value between pipeline stages; only the validation stage
// fills in Genre and the seed linkage fields.
type Track struct {
	ID         string
	Title      string
	Artist     string
	ArtistID   string
	Popularity int
	URL        string
	PreviewURL string
	Genre      string
	SeedTrack  string
	SeedArtist string
}

// TrackDetail is the catalog's per-track metadata used for enrichment:
// the album name feeds the language heuristic, the preview URL feeds
// the background energy analyzer.
type TrackDetail struct {
	ID         string
	Title      string
	Album      string
	PreviewURL string
}

// Recommendation is the record handed to the request-handling layer.
type Recommendation struct {
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Link       string  `json:"link"`
	ID         string  `json:"id"`
	Genre      string  `json:"genre"`
	ArtistID   string  `json:"artist_id"`
	Popularity int     `json:"popularity"`
	SeedTrack  string  `json:"seed_track,omitempty"`
	SeedArtist string  `json:"seed_artist,omitempty"`
	Emotion    string  `json:"emotion"`
	Score      float64 `json:"score"`
}
