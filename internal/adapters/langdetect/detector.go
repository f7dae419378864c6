// Package langdetect wraps a statistical language classifier behind
// the detector port. It is the last-resort signal of the language
// heuristic; unreliable guesses surface as errors so the caller can
// fail open.
package langdetect

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

var errUndetermined = errors.New("langdetect: could not determine language")

type Detector struct{}

var _ ports.LanguageDetector = Detector{}

func New() Detector {
	return Detector{}
}

// Detect returns the ISO 639-1 code of the most likely language, or an
// error when the classifier has no reliable guess.
func (Detector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errUndetermined
	}

	info := whatlanggo.Detect(text)
	if info.Lang == -1 || !info.IsReliable() {
		return "", errUndetermined
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return "", errUndetermined
	}
	return code, nil
}
