package domain

// AudioFeatures is the fixed eight-feature target vector sent to the
// recommendation engine.
type AudioFeatures struct {
	Valence          float64
	Energy           float64
	Danceability     float64
	Acousticness     float64
	Instrumentalness float64
	Liveness         float64
	Speechiness      float64
	Loudness         float64
}

// emotionFeatures maps each emotion to its canonical target vector.
var emotionFeatures = map[string]AudioFeatures{
	"joy":         {Valence: 0.95, Energy: 0.82, Danceability: 0.80, Acousticness: 0.10, Instrumentalness: 0.05, Liveness: 0.40, Speechiness: 0.10, Loudness: -4.0},
	"excitement":  {Valence: 0.85, Energy: 0.90, Danceability: 0.75, Acousticness: 0.08, Instrumentalness: 0.10, Liveness: 0.65, Speechiness: 0.15, Loudness: -3.5},
	"love":        {Valence: 0.70, Energy: 0.40, Danceability: 0.50, Acousticness: 0.60, Instrumentalness: 0.20, Liveness: 0.25, Speechiness: 0.10, Loudness: -10.0},
	"contentment": {Valence: 0.65, Energy: 0.35, Danceability: 0.45, Acousticness: 0.70, Instrumentalness: 0.30, Liveness: 0.20, Speechiness: 0.08, Loudness: -12.0},
	"amusement":   {Valence: 0.75, Energy: 0.45, Danceability: 0.65, Acousticness: 0.50, Instrumentalness: 0.15, Liveness: 0.30, Speechiness: 0.20, Loudness: -8.0},
	"curiosity":   {Valence: 0.55, Energy: 0.60, Danceability: 0.50, Acousticness: 0.45, Instrumentalness: 0.50, Liveness: 0.40, Speechiness: 0.20, Loudness: -9.0},
	"surprise":    {Valence: 0.60, Energy: 0.70, Danceability: 0.60, Acousticness: 0.35, Instrumentalness: 0.25, Liveness: 0.55, Speechiness: 0.25, Loudness: -7.0},
	"anger":       {Valence: 0.15, Energy: 0.90, Danceability: 0.55, Acousticness: 0.20, Instrumentalness: 0.25, Liveness: 0.70, Speechiness: 0.40, Loudness: -4.0},
	"fear":        {Valence: 0.10, Energy: 0.75, Danceability: 0.40, Acousticness: 0.25, Instrumentalness: 0.60, Liveness: 0.45, Speechiness: 0.15, Loudness: -6.0},
	"sadness":     {Valence: 0.15, Energy: 0.25, Danceability: 0.30, Acousticness: 0.80, Instrumentalness: 0.35, Liveness: 0.15, Speechiness: 0.10, Loudness: -14.0},
}

// FeaturesFor returns the canonical vector for an emotion. Unknown
// emotions report ok=false with a zero vector.
func FeaturesFor(emotion string) (AudioFeatures, bool) {
	f, ok := emotionFeatures[emotion]
	return f, ok
}

// WeightedAudioFeatures resolves an ordered set of top emotions into one
// target vector. A single emotion returns its canonical vector directly;
// several emotions are combined with weights proportional to their
// scores. Emotions absent from the canonical table contribute nothing.
func WeightedAudioFeatures(top EmotionScores) AudioFeatures {
	if len(top) == 1 {
		f, _ := FeaturesFor(top[0].Label)
		return f
	}

	var sum float64
	for _, es := range top {
		sum += es.Score
	}
	if sum == 0 {
		return AudioFeatures{}
	}

	var out AudioFeatures
	for _, es := range top {
		f, ok := FeaturesFor(es.Label)
		if !ok {
			continue
		}
		out.addScaled(f, es.Score/sum)
	}
	return out
}

func (a *AudioFeatures) addScaled(f AudioFeatures, w float64) {
	a.Valence += w * f.Valence
	a.Energy += w * f.Energy
	a.Danceability += w * f.Danceability
	a.Acousticness += w * f.Acousticness
	a.Instrumentalness += w * f.Instrumentalness
	a.Liveness += w * f.Liveness
	a.Speechiness += w * f.Speechiness
	a.Loudness += w * f.Loudness
}

// Map flattens the vector into named values for use as query parameters.
func (a AudioFeatures) Map() map[string]float64 {
	return map[string]float64{
		"valence":          a.Valence,
		"energy":           a.Energy,
		"danceability":     a.Danceability,
		"acousticness":     a.Acousticness,
		"instrumentalness": a.Instrumentalness,
		"liveness":         a.Liveness,
		"speechiness":      a.Speechiness,
		"loudness":         a.Loudness,
	}
}
