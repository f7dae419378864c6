package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
	"github.com/moodlifter-labs/moodlifter/internal/worker"
)

// emotionScores decodes a JSON object while preserving key order, so
// that equal scores keep their tie-break position from the request.
type emotionScores domain.EmotionScores

func (e *emotionScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("emotions must be an object")
	}

	var scores domain.EmotionScores
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("emotions: unexpected key %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("emotion %q: score must be a number", label)
		}
		score, err := num.Float64()
		if err != nil {
			return fmt.Errorf("emotion %q: %w", label, err)
		}
		scores = append(scores, domain.EmotionScore{Label: label, Score: score})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = emotionScores(scores)
	return nil
}

type recommendRequest struct {
	Emotions emotionScores `json:"emotions"`
	Text     string        `json:"text"`
	Genre    string        `json:"genre"`
	Limit    int           `json:"limit"`
}

type recommendResponse struct {
	RunID   string                  `json:"run_id"`
	Emotion string                  `json:"emotion"`
	Score   float64                 `json:"score"`
	Genre   string                  `json:"genre,omitempty"`
	Message string                  `json:"message,omitempty"`
	Tracks  []domain.Recommendation `json:"tracks"`
}

// Recommend handles POST /recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	emotions := domain.EmotionScores(req.Emotions)
	if len(emotions) == 0 && req.Text != "" {
		if h.classifier == nil {
			writeError(w, http.StatusNotImplemented, "emotion classifier not configured")
			return
		}
		text := preprocessText(req.Text)
		if text == "" {
			writeError(w, http.StatusBadRequest, "text contains no words")
			return
		}
		classified, err := h.classifier.Classify(r.Context(), text)
		if err != nil {
			writeError(w, http.StatusBadGateway, "emotion classification failed")
			return
		}
		emotions = classified
	}
	if len(emotions) == 0 {
		writeError(w, http.StatusBadRequest, "emotions or text is required")
		return
	}

	tracks, err := h.svc.GetRecommendations(r.Context(), emotions, req.Genre, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	primary, _ := emotions.Primary()
	resp := recommendResponse{
		Emotion: primary.Label,
		Score:   primary.Score,
		Genre:   req.Genre,
		Tracks:  tracks,
	}
	if len(tracks) == 0 {
		resp.Message = "no recommendations found"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.RunID = uuid.NewString()
	if h.history != nil {
		run := ports.Run{
			ID:      resp.RunID,
			Emotion: primary.Label,
			Score:   primary.Score,
			Genre:   req.Genre,
			Tracks:  tracks,
		}
		if err := h.history.SaveRun(r.Context(), run); err != nil {
			log.Printf("WARN rest: failed to save run %s: %v", resp.RunID, err)
		} else if h.jobs != nil {
			for _, track := range tracks {
				h.jobs.Submit(worker.Job{RunID: resp.RunID, TrackID: track.ID})
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// preprocessText strips everything but letters and spaces, squeezes
// whitespace, and lowercases the rest before classification.
func preprocessText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
