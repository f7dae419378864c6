package domain

import "sort"

// EmotionScore is one entry of an emotion distribution. Scores are raw
// model outputs: non-negative, not required to sum to 1.
type EmotionScore struct {
	Label string
	Score float64
}

// EmotionScores is an emotion distribution in first-seen order. Order
// matters: ties between equal scores are broken by position.
type EmotionScores []EmotionScore

// topEmotionThreshold and topEmotionCount bound the set of emotions that
// feed the weighted audio-feature target.
const (
	topEmotionThreshold = 0.3
	topEmotionCount     = 3
)

// Primary returns the highest-scoring emotion, earliest entry winning ties.
func (e EmotionScores) Primary() (EmotionScore, bool) {
	if len(e) == 0 {
		return EmotionScore{}, false
	}
	best := e[0]
	for _, es := range e[1:] {
		if es.Score > best.Score {
			best = es
		}
	}
	return best, true
}

// Top returns the emotions scoring at least 0.3, strongest first, capped
// at three. If none qualify it falls back to the primary emotion alone.
func (e EmotionScores) Top() EmotionScores {
	top := make(EmotionScores, 0, len(e))
	for _, es := range e {
		if es.Score >= topEmotionThreshold {
			top = append(top, es)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > topEmotionCount {
		top = top[:topEmotionCount]
	}
	if len(top) == 0 {
		primary, ok := e.Primary()
		if !ok {
			return nil
		}
		top = EmotionScores{primary}
	}
	return top
}

// searchTerms maps an emotion label to the catalog search term used for
// candidate discovery.
var searchTerms = map[string]string{
	"joy":         "happy",
	"excitement":  "energetic",
	"love":        "love",
	"contentment": "relaxing",
	"amusement":   "playful",
	"curiosity":   "indie",
	"surprise":    "eclectic",
	"anger":       "angry",
	"fear":        "intense",
	"sadness":     "sad",
}

// SearchTermFor returns the discovery search term for an emotion,
// falling back to the label itself for unmapped emotions.
func SearchTermFor(emotion string) string {
	if term, ok := searchTerms[emotion]; ok {
		return term
	}
	return emotion
}
