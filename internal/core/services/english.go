package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

// Audience is the tri-state outcome of the artist audience check.
// Unknown means the signal could not be fetched; callers must not
// reject on it.
type Audience int

const (
	AudienceUnknown Audience = iota
	AudienceEnglish
	AudienceNotEnglish
)

// englishMarket is the reference market for the audience check.
const englishMarket = "US"

// nonEnglishWords are space-bounded function words whose presence marks
// a title as non-English outright.
var nonEnglishWords = []string{" otr@", " chic@", " con ", " esta ", " otro ", " otra ", " el ", " la ", " tono "}

// NonEnglishTags is the tag vocabulary that marks a track or artist as
// non-English in the tag database.
var NonEnglishTags = []string{"spanish", "espanol", "español", "french", "german", "italian", "japanese", "korean", "brazilian", "portuguese", "chinese"}

const asciiPunctuation = `!()-[]{};:'",<>./?@#$%^&*_~`

// EnglishChecker decides whether text and tracks look non-English,
// combining lexical, script, statistical and audience signals.
type EnglishChecker struct {
	catalog  ports.CatalogProvider
	detector ports.LanguageDetector
	lyrics   ports.LyricsProvider

	mu            sync.Mutex
	audienceCache map[string]Audience
}

// NewEnglishChecker constructs a checker. lyrics may be nil; the
// lyrics confirmation is then skipped.
func NewEnglishChecker(catalog ports.CatalogProvider, detector ports.LanguageDetector, lyrics ports.LyricsProvider) *EnglishChecker {
	return &EnglishChecker{
		catalog:       catalog,
		detector:      detector,
		lyrics:        lyrics,
		audienceCache: make(map[string]Audience),
	}
}

// IsNonEnglish applies the text heuristic: lexical function words,
// then non-ASCII script after punctuation stripping, then the
// statistical detector. Detector failure assumes English.
func (c *EnglishChecker) IsNonEnglish(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range nonEnglishWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
	for _, r := range cleaned {
		if r > 127 {
			return true
		}
	}

	lang, err := c.detector.Detect(text)
	if err != nil {
		return false
	}
	return lang != "en"
}

// IsNonEnglishTrack judges a track title, optionally pulling the album
// name for the same heuristic when a catalog ID is supplied and, when a
// lyrics provider is configured, confirming against the lyrics. Titles
// of two characters or fewer are too short to judge and always pass as
// English.
func (c *EnglishChecker) IsNonEnglishTrack(ctx context.Context, title, artist, catalogID string) bool {
	if utf8.RuneCountInString(title) <= 2 {
		return false
	}
	if c.IsNonEnglish(title) {
		return true
	}

	if catalogID != "" {
		detail, err := c.catalog.GetTrack(ctx, catalogID)
		if err != nil {
			log.Printf("WARN english: album lookup for %s failed: %v", catalogID, err)
		} else if detail.Album != "" && c.IsNonEnglish(detail.Album) {
			return true
		}
	}

	if c.lyrics != nil && !c.lyrics.SongIsEnglish(ctx, artist, title) {
		return true
	}

	return false
}

// ArtistHasEnglishAudience checks whether the artist has meaningful
// popularity in the reference English market: at least three top
// tracks, one of them with popularity above 10. Fetch failures return
// AudienceUnknown, which callers must treat as non-rejecting.
func (c *EnglishChecker) ArtistHasEnglishAudience(ctx context.Context, artistID string) Audience {
	if artistID == "" {
		return AudienceUnknown
	}

	c.mu.Lock()
	cached, ok := c.audienceCache[artistID]
	c.mu.Unlock()
	if ok {
		return cached
	}

	top, err := c.catalog.GetArtistTopTracks(ctx, artistID, englishMarket)
	if err != nil {
		return AudienceUnknown
	}

	verdict := AudienceNotEnglish
	if len(top) >= 3 {
		for _, t := range top {
			if t.Popularity > 10 {
				verdict = AudienceEnglish
				break
			}
		}
	}

	c.mu.Lock()
	c.audienceCache[artistID] = verdict
	c.mu.Unlock()
	return verdict
}

// HasNonEnglishTags reports whether any of the tags belongs to the
// non-English tag vocabulary.
func HasNonEnglishTags(tags []string) bool {
	for _, tag := range tags {
		for _, marker := range NonEnglishTags {
			if tag == marker {
				return true
			}
		}
	}
	return false
}
