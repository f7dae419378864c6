package ports

import (
	"context"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// LanguageDetector is the statistical language-classification fallback
// used when the lexical and script heuristics are inconclusive.
type LanguageDetector interface {
	// Detect returns a best-guess ISO 639-1 code for the text, or an
	// error when no confident guess exists.
	Detect(text string) (string, error)
}

// LyricsProvider offers a richer lyrics-based language confirmation. It
// is optional; a nil provider simply skips the check.
type LyricsProvider interface {
	// SongIsEnglish reports whether the song's lyrics look English.
	// Lookup failures are fail-open and should return true.
	SongIsEnglish(ctx context.Context, artist, title string) bool
}

// EmotionClassifier turns free text into an emotion-score distribution.
// It is a remote black box; the pipeline only consumes its output.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (domain.EmotionScores, error)
}
