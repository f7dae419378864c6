package rest

import (
	"net/http"
	"strconv"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

const defaultHistoryLimit = 10

type historyRun struct {
	ID        string                  `json:"id"`
	Emotion   string                  `json:"emotion"`
	Score     float64                 `json:"score"`
	Genre     string                  `json:"genre,omitempty"`
	CreatedAt string                  `json:"created_at"`
	Tracks    []domain.Recommendation `json:"tracks"`
}

// History handles GET /history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotImplemented, "run history not configured")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.history.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]historyRun, 0, len(runs))
	for _, run := range runs {
		tracks := run.Tracks
		if tracks == nil {
			tracks = []domain.Recommendation{}
		}
		out = append(out, historyRun{
			ID:        run.ID,
			Emotion:   run.Emotion,
			Score:     run.Score,
			Genre:     run.Genre,
			CreatedAt: run.CreatedAt,
			Tracks:    tracks,
		})
	}

	writeJSON(w, http.StatusOK, map[string][]historyRun{"runs": out})
}
