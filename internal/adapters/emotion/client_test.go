package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Inputs != "i feel great today" {
			t.Fatalf("inputs: got %q", req.Inputs)
		}
		_, _ = w.Write([]byte(`[[
			{"label": "joy", "score": 0.91},
			{"label": "excitement", "score": 0.62},
			{"label": "sadness", "score": 0.04}
		]]`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	got, err := client.Classify(context.Background(), "i feel great today")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2 (below-threshold label must be dropped)", len(got))
	}
	if got[0].Label != "joy" || got[1].Label != "excitement" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "empty response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			client := NewClient(ts.URL)
			if _, err := client.Classify(context.Background(), "text"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
