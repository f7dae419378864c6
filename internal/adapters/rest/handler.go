// Package rest exposes the recommendation pipeline over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
	"github.com/moodlifter-labs/moodlifter/internal/worker"
)

// RecommendationService is the slice of the core pipeline the HTTP
// layer needs.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, emotions domain.EmotionScores, genre string, limit int) ([]domain.Recommendation, error)
}

// JobQueue accepts background analysis jobs. Submissions must not block.
type JobQueue interface {
	Submit(job worker.Job)
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc        RecommendationService
	classifier ports.EmotionClassifier
	history    ports.HistoryRepository
	jobs       JobQueue
	router     *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. The
// classifier, history repository, and job queue are optional; routes
// that depend on a missing collaborator answer 501.
func NewHandler(svc RecommendationService, classifier ports.EmotionClassifier, history ports.HistoryRepository, jobs JobQueue) *Handler {
	h := &Handler{
		svc:        svc,
		classifier: classifier,
		history:    history,
		jobs:       jobs,
		router:     http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /recommendations", h.Recommend)
	h.router.HandleFunc("GET /history", h.History)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "MoodLifter is live 🎶"})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType := strings.TrimSpace(strings.Split(ct, ";")[0])
	return strings.EqualFold(mediaType, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
