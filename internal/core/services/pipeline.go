package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

const (
	// fanOutWidth bounds every concurrent stage of the pipeline.
	fanOutWidth = 3

	rawSearchLimit    = 40
	availabilityProbe = 20
	availabilityCap   = 15
	expansionBatch    = 15
	perSeedKeep       = 5
	defaultLimit      = 5

	minPopularity      = 20
	minPopularityGenre = 25
)

// genreExemptions lists genres whose candidates skip the tag-based
// non-English screening.
var genreExemptions = map[string]struct{}{
	"reggae":     {},
	"electronic": {},
	"indie":      {},
	"folk":       {},
}

func isExemptGenre(genre string) bool {
	_, ok := genreExemptions[strings.ToLower(genre)]
	return ok
}

// Recommender resolves an emotion distribution into a ranked track
// list: discovery, availability filtering, per-seed expansion with
// validation, then aggregation and backfill.
type Recommender struct {
	catalog ports.CatalogProvider
	tags    ports.TagProvider
	recco   ports.RecommendationProvider
	english *EnglishChecker
}

func NewRecommender(catalog ports.CatalogProvider, tags ports.TagProvider, recco ports.RecommendationProvider, english *EnglishChecker) *Recommender {
	return &Recommender{
		catalog: catalog,
		tags:    tags,
		recco:   recco,
		english: english,
	}
}

// GetRecommendations is the pipeline entry point. It returns at most
// limit tracks with distinct artists, sorted by popularity descending.
// An empty result is a valid outcome; errors never surface from a
// single candidate's processing.
func (r *Recommender) GetRecommendations(ctx context.Context, emotions domain.EmotionScores, genre string, limit int) ([]domain.Recommendation, error) {
	primary, ok := emotions.Primary()
	if !ok {
		return []domain.Recommendation{}, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	top := emotions.Top()
	features := domain.WeightedAudioFeatures(top)
	term := domain.SearchTermFor(primary.Label)

	log.Printf("DEBUG pipeline: searching catalog for %q (genre=%q)", term, genre)
	discovered := r.Search(ctx, term, genre, rawSearchLimit)
	log.Printf("DEBUG pipeline: %d discovery candidates", len(discovered))

	seeds := r.filterAvailable(ctx, discovered)
	if len(seeds) == 0 {
		log.Printf("WARN pipeline: no candidates confirmed in tag database, using discovery hits directly")
		if len(discovered) > limit {
			seeds = discovered[:limit]
		} else {
			seeds = discovered
		}
	}
	log.Printf("DEBUG pipeline: %d seeds after availability filter", len(seeds))

	seen := NewSeenArtists()
	merged := r.expandSeeds(ctx, seeds, features, genre, primary, seen)

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Popularity > merged[j].Popularity })
	if len(merged) > limit {
		merged = merged[:limit]
	}

	merged = r.backfill(ctx, merged, seeds, primary, limit, seen)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Popularity > merged[j].Popularity })
	if merged == nil {
		merged = []domain.Recommendation{}
	}
	return merged, nil
}

// Search queries the catalog for the term (with an optional genre
// hashtag), screens the raw hits, and returns the strongest survivors.
func (r *Recommender) Search(ctx context.Context, term, genre string, limit int) []domain.Track {
	query := strings.TrimSpace(term)
	if genre != "" {
		query = strings.TrimSpace(term + " #" + genre)
	}

	hits, err := r.catalog.SearchTracks(ctx, query, rawSearchLimit)
	if err != nil {
		log.Printf("WARN pipeline: catalog search failed: %v", err)
		return nil
	}

	floor := minPopularity
	if genre != "" {
		floor = minPopularityGenre
	}

	kept := make([]domain.Track, 0, len(hits))
	for _, hit := range hits {
		if hit.Artist == "" {
			continue
		}
		if hit.Popularity < floor {
			continue
		}
		// Carried over from the product rules as an OR, so the audience
		// gate runs for exempt genres too; kept as-is rather than
		// silently narrowing it.
		if genre != "" || !isExemptGenre(genre) {
			if r.english.ArtistHasEnglishAudience(ctx, hit.ArtistID) == AudienceNotEnglish {
				continue
			}
		}
		kept = append(kept, hit)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Popularity > kept[j].Popularity })
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// filterAvailable concurrently confirms discovery candidates in the tag
// database and screens them for non-English tags, keeping at most
// availabilityCap of them in completion order.
func (r *Recommender) filterAvailable(ctx context.Context, candidates []domain.Track) []domain.Track {
	probe := candidates
	if len(probe) > availabilityProbe {
		probe = probe[:availabilityProbe]
	}

	results := make(chan domain.Track, len(probe))
	g := new(errgroup.Group)
	g.SetLimit(fanOutWidth)
	for _, cand := range probe {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if !r.tags.TrackExists(ctx, cand.Artist, cand.Title) {
				return nil
			}
			if HasNonEnglishTags(r.combinedTags(ctx, cand.Artist, cand.Title)) {
				return nil
			}
			results <- cand
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var available []domain.Track
	for cand := range results {
		if len(available) < availabilityCap {
			available = append(available, cand)
		}
	}
	return available
}

// expandSeeds fans out over the seeds, consuming each seed's validated
// batch as it completes. The shared seen set arbitrates artist dedup
// across concurrently finishing seeds.
func (r *Recommender) expandSeeds(ctx context.Context, seeds []domain.Track, features domain.AudioFeatures, genre string, primary domain.EmotionScore, seen *SeenArtists) []domain.Recommendation {
	results := make(chan []domain.Recommendation, len(seeds))
	g := new(errgroup.Group)
	g.SetLimit(fanOutWidth)
	for _, seed := range seeds {
		if seen.Contains(seed.Artist) {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results <- r.processSeed(ctx, seed, features, genre, primary, seen)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var merged []domain.Recommendation
	for batch := range results {
		for _, rec := range batch {
			if seen.Add(rec.Artist) {
				merged = append(merged, rec)
			}
		}
	}
	return merged
}

// processSeed expands one seed through the recommendation engine and
// validates the returned candidates concurrently, keeping the most
// popular survivors.
func (r *Recommender) processSeed(ctx context.Context, seed domain.Track, features domain.AudioFeatures, genre string, primary domain.EmotionScore, seen *SeenArtists) []domain.Recommendation {
	log.Printf("DEBUG pipeline: expanding seed %q by %q", seed.Title, seed.Artist)
	candidates := r.recco.Recommend(ctx, seed.ID, features, expansionBatch)
	if len(candidates) == 0 {
		return nil
	}

	snapshot := seen.Snapshot()
	results := make(chan domain.Track, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(fanOutWidth)
	for _, cand := range candidates {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if track, ok := r.validate(ctx, cand, seed, genre, snapshot); ok {
				results <- track
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	localSeen := make(map[string]struct{})
	var valid []domain.Track
	for track := range results {
		key := strings.ToLower(track.Artist)
		if _, dup := localSeen[key]; dup {
			continue
		}
		localSeen[key] = struct{}{}
		valid = append(valid, track)
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Popularity > valid[j].Popularity })
	if len(valid) > perSeedKeep {
		valid = valid[:perSeedKeep]
	}

	out := make([]domain.Recommendation, 0, len(valid))
	for _, track := range valid {
		log.Printf("DEBUG pipeline: accepted %q by %q (popularity %d, seed %q)", track.Title, track.Artist, track.Popularity, track.SeedTrack)
		out = append(out, domain.Recommendation{
			Title:      track.Title,
			Artist:     track.Artist,
			Link:       track.URL,
			ID:         track.ID,
			Genre:      track.Genre,
			ArtistID:   track.ArtistID,
			Popularity: track.Popularity,
			SeedTrack:  track.SeedTrack,
			SeedArtist: track.SeedArtist,
			Emotion:    primary.Label,
			Score:      primary.Score,
		})
	}
	return out
}

// backfill tops the merged list up from the seed list when expansion
// came up short, attributing genre lazily and skipping artists that
// already made it in.
func (r *Recommender) backfill(ctx context.Context, merged []domain.Recommendation, seeds []domain.Track, primary domain.EmotionScore, limit int, seen *SeenArtists) []domain.Recommendation {
	for _, seed := range seeds {
		if len(merged) >= limit {
			break
		}
		if !seen.Add(seed.Artist) {
			continue
		}
		genreName := domain.GenreFor(r.combinedTags(ctx, seed.Artist, seed.Title))
		merged = append(merged, domain.Recommendation{
			Title:      seed.Title,
			Artist:     seed.Artist,
			Link:       seed.URL,
			ID:         seed.ID,
			Genre:      genreName,
			ArtistID:   seed.ArtistID,
			Popularity: seed.Popularity,
			Emotion:    primary.Label,
			Score:      primary.Score,
		})
	}
	return merged
}

// combinedTags fetches track and artist tags as one list, track tags
// first. The tag cache keeps repeat calls cheap.
func (r *Recommender) combinedTags(ctx context.Context, artist, title string) []string {
	tags := r.tags.TrackTags(ctx, artist, title)
	return append(tags, r.tags.ArtistTags(ctx, artist, title)...)
}
