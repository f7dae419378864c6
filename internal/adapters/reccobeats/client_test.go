package reccobeats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(http.DefaultClient, baseURL)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.backoff = time.Millisecond
	return c
}

func TestRecommendSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("seeds"); got != "seed-1" {
			t.Fatalf("seeds: got %q", got)
		}
		if got := r.URL.Query().Get("size"); got != "15" {
			t.Fatalf("size: got %q", got)
		}
		if !r.URL.Query().Has("valence") || !r.URL.Query().Has("loudness") {
			t.Fatal("feature params missing")
		}
		_, _ = w.Write([]byte(`{"content": [
			{"id": "r1", "trackTitle": "Song", "popularity": 70, "href": "https://open.spotify.com/track/abc", "artists": [{"id": "a1", "name": "Artist"}]},
			{"id": "r2", "trackTitle": "Other", "popularity": 50, "href": "", "artists": []}
		]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	features, _ := domain.FeaturesFor("joy")
	got := client.Recommend(context.Background(), "seed-1", features, 15)
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	if got[0].Artist != "Artist" || got[0].URL != "https://open.spotify.com/track/abc" {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].Artist != "Unknown" {
		t.Fatalf("artist-less candidate should fall back to Unknown, got %q", got[1].Artist)
	}
}

func TestRecommendRetriesOnceWithReducedBatch(t *testing.T) {
	var sizes []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sizes = append(sizes, r.URL.Query().Get("size"))
		if len(sizes) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"content": [{"id": "r1", "trackTitle": "Song", "popularity": 1, "artists": [{"name": "A"}]}]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	got := client.Recommend(context.Background(), "seed-1", domain.AudioFeatures{}, 15)
	if len(got) != 1 {
		t.Fatalf("len: got %d, want 1", len(got))
	}
	if len(sizes) != 2 || sizes[0] != "15" || sizes[1] != "10" {
		t.Fatalf("sizes: got %v, want [15 10]", sizes)
	}
}

func TestRecommendSecondThrottleYieldsEmpty(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	got := client.Recommend(context.Background(), "seed-1", domain.AudioFeatures{}, 15)
	if got != nil {
		t.Fatalf("expected empty result, got %v", got)
	}
	if calls != 2 {
		t.Fatalf("calls: got %d, want 2", calls)
	}
}

func TestRecommendAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"content": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			client := newTestClient(ts.URL)
			if got := client.Recommend(context.Background(), "seed-1", domain.AudioFeatures{}, 15); got != nil {
				t.Fatalf("expected empty result, got %v", got)
			}
		})
	}
}
