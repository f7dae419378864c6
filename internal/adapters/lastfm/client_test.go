package lastfm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrackExists(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("method"); got != "track.getInfo" {
			t.Fatalf("method: got %q", got)
		}
		if got := r.URL.Query().Get("autocorrect"); got != "1" {
			t.Fatalf("autocorrect: got %q", got)
		}
		switch r.URL.Query().Get("track") {
		case "Known":
			_, _ = w.Write([]byte(`{"track": {"name": "Known"}}`))
		default:
			_, _ = w.Write([]byte(`{"error": 6, "message": "Track not found"}`))
		}
	}))
	defer ts.Close()

	client := NewClient("key", ts.URL)
	ctx := context.Background()

	if !client.TrackExists(ctx, "A", "Known") {
		t.Fatal("known track should exist")
	}
	if client.TrackExists(ctx, "A", "Missing") {
		t.Fatal("missing track should not exist")
	}

	// Repeats are served from the cache.
	_ = client.TrackExists(ctx, "A", "Known")
	_ = client.TrackExists(ctx, "A", "Missing")
	if calls != 2 {
		t.Fatalf("calls: got %d, want 2", calls)
	}
}

func TestTrackTags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "tag list",
			body: `{"toptags": {"tag": [{"name": "Rock"}, {"name": "Indie Rock"}]}}`,
			want: []string{"rock", "indie rock"},
		},
		{
			name: "single bare tag object",
			body: `{"toptags": {"tag": {"name": "Jazz"}}}`,
			want: []string{"jazz"},
		},
		{
			name: "no tags",
			body: `{"toptags": {}}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := NewClient("key", ts.URL)
			got := client.TrackTags(context.Background(), "A", "T")
			if len(got) != len(tt.want) {
				t.Fatalf("len: got %d (%v), want %d", len(got), got, len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("tag %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLookupFailureIsNeutralAndUncached(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"track": {"name": "T"}}`))
	}))
	defer ts.Close()

	client := NewClient("key", ts.URL)
	ctx := context.Background()

	if client.TrackExists(ctx, "A", "T") {
		t.Fatal("server error should read as missing")
	}
	if !client.TrackExists(ctx, "A", "T") {
		t.Fatal("recovered lookup should not be pinned by the failure")
	}
}

func TestArtistTagsOmitTrackParam(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("track") {
			t.Fatal("artist tag lookup must not send a track param")
		}
		_, _ = w.Write([]byte(`{"toptags": {"tag": [{"name": "pop"}]}}`))
	}))
	defer ts.Close()

	client := NewClient("key", ts.URL)
	got := client.ArtistTags(context.Background(), "A", "T")
	if len(got) != 1 || got[0] != "pop" {
		t.Fatalf("unexpected tags: %v", got)
	}
}
