package services

import (
	"context"
	"strings"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// validate runs one recommendation-engine candidate through the ordered
// rejection gates. Each gate short-circuits so later, more expensive
// lookups are skipped for candidates that already failed. On success
// the candidate comes back enriched with its attributed genre and the
// seed linkage.
func (r *Recommender) validate(ctx context.Context, cand, seed domain.Track, genre string, snapshot map[string]struct{}) (domain.Track, bool) {
	if cand.ID == "" {
		return domain.Track{}, false
	}

	if _, dup := snapshot[strings.ToLower(cand.Artist)]; dup {
		return domain.Track{}, false
	}

	if domain.SameSong(cand, seed) {
		return domain.Track{}, false
	}

	// The engine links candidates by catalog URL; the trailing path
	// segment is the catalog ID used from here on.
	catalogID := lastPathSegment(cand.URL)
	if r.english.IsNonEnglishTrack(ctx, cand.Title, cand.Artist, catalogID) {
		return domain.Track{}, false
	}

	if !r.tags.TrackExists(ctx, cand.Artist, cand.Title) {
		return domain.Track{}, false
	}

	tags := r.combinedTags(ctx, cand.Artist, cand.Title)

	if genre == "" || !isExemptGenre(genre) {
		if HasNonEnglishTags(tags) {
			return domain.Track{}, false
		}
	}

	if !domain.MatchesGenre(tags, genre) {
		return domain.Track{}, false
	}

	cand.ID = catalogID
	cand.Genre = domain.GenreFor(tags)
	cand.SeedTrack = seed.Title
	cand.SeedArtist = seed.Artist
	return cand, true
}

func lastPathSegment(link string) string {
	if link == "" {
		return ""
	}
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
