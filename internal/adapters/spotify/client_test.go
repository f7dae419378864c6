package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchTracks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "happy #pop" {
			t.Fatalf("query: got %q, want %q", got, "happy #pop")
		}
		if got := r.URL.Query().Get("type"); got != "track" {
			t.Fatalf("type: got %q, want track", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tracks": {"items": [
				{
					"id": "t1",
					"name": "Happy",
					"popularity": 88,
					"artists": [{"id": "a1", "name": "Pharrell Williams"}],
					"external_urls": {"spotify": "https://open.spotify.com/track/t1"}
				},
				{
					"id": "t2",
					"name": "Instrumental",
					"popularity": 40,
					"artists": []
				}
			]}
		}`))
	}))
	defer ts.Close()

	client := NewClient(http.DefaultClient, ts.URL)
	tracks, err := client.SearchTracks(context.Background(), "happy #pop", 40)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len: got %d, want 2", len(tracks))
	}
	first := tracks[0]
	if first.ID != "t1" || first.Artist != "Pharrell Williams" || first.ArtistID != "a1" {
		t.Fatalf("unexpected first track: %+v", first)
	}
	if first.URL != "https://open.spotify.com/track/t1" {
		t.Fatalf("url: got %q", first.URL)
	}
	if tracks[1].Artist != "" {
		t.Fatalf("artist-less hit should map to empty attribution, got %q", tracks[1].Artist)
	}
}

func TestGetTrack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracks/t1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "t1", "name": "Vida", "album": {"name": "Más Vida"}, "preview_url": "https://cdn.example/p.mp3"}`))
	}))
	defer ts.Close()

	client := NewClient(http.DefaultClient, ts.URL)
	detail, err := client.GetTrack(context.Background(), "t1")
	if err != nil {
		t.Fatalf("get track: %v", err)
	}
	if detail.Album != "Más Vida" {
		t.Fatalf("album: got %q", detail.Album)
	}
	if detail.PreviewURL != "https://cdn.example/p.mp3" {
		t.Fatalf("preview: got %q", detail.PreviewURL)
	}
}

func TestGetArtistTopTracks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artists/a1/top-tracks" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("market"); got != "US" {
			t.Fatalf("market: got %q, want US", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks": [
			{"id": "t1", "name": "One", "popularity": 60, "artists": [{"id": "a1", "name": "A"}]},
			{"id": "t2", "name": "Two", "popularity": 5, "artists": [{"id": "a1", "name": "A"}]}
		]}`))
	}))
	defer ts.Close()

	client := NewClient(http.DefaultClient, ts.URL)
	tracks, err := client.GetArtistTopTracks(context.Background(), "a1", "US")
	if err != nil {
		t.Fatalf("top tracks: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Popularity != 60 {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
}

func TestDoRequestWithRetry(t *testing.T) {
	tests := []struct {
		name             string
		statuses         []int
		maxRetries       int
		expectedStatus   int
		expectedAttempts int
		expectErr        bool
	}{
		{
			name:             "retries on 503 then succeeds",
			statuses:         []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK},
			maxRetries:       3,
			expectedStatus:   http.StatusOK,
			expectedAttempts: 3,
			expectErr:        false,
		},
		{
			name:             "exhausts retries on 429",
			statuses:         []int{http.StatusTooManyRequests},
			maxRetries:       2,
			expectedStatus:   0,
			expectedAttempts: 2,
			expectErr:        true,
		},
		{
			name:             "does not retry client errors",
			statuses:         []int{http.StatusBadRequest},
			maxRetries:       3,
			expectedStatus:   http.StatusBadRequest,
			expectedAttempts: 1,
			expectErr:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				status := tt.statuses[len(tt.statuses)-1]
				if attempts <= len(tt.statuses) {
					status = tt.statuses[attempts-1]
				}
				w.WriteHeader(status)
			}))
			defer ts.Close()

			client := &Client{
				httpClient:  http.DefaultClient,
				baseURL:     ts.URL,
				maxRetries:  tt.maxRetries,
				baseBackoff: time.Millisecond,
			}

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			if err != nil {
				t.Fatalf("create request: %v", err)
			}

			resp, err := client.doRequestWithRetry(req)
			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error: %v, got: %v", tt.expectErr, err)
			}
			if resp != nil {
				defer resp.Body.Close()
				if resp.StatusCode != tt.expectedStatus {
					t.Fatalf("status: got %d, want %d", resp.StatusCode, tt.expectedStatus)
				}
			}
			if attempts != tt.expectedAttempts {
				t.Fatalf("attempts: got %d, want %d", attempts, tt.expectedAttempts)
			}
		})
	}
}
