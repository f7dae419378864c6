// Package reccobeats implements the recommendation-engine port. Calls
// are gated by a process-wide limiter and degrade to an empty result on
// throttling or failure; the pipeline never fails a run over one seed.
package reccobeats

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.reccobeats.com/v1/track/recommendation"

	// The service tolerates 50 calls per rolling minute; the limiter
	// paces callers under that and blocks rather than drops.
	callsPerWindow = 50
	window         = time.Minute

	throttleBackoff  = 20 * time.Second
	reducedBatchSize = 10
)

// Client is the recommendation-engine client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	backoff    time.Duration
}

var _ ports.RecommendationProvider = (*Client)(nil)

// NewClient constructs a recommendation client. baseURL is overridable
// for tests.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(window/callsPerWindow), 1),
		backoff:    throttleBackoff,
	}
}

// Recommend expands one seed into candidates steered by the target
// feature vector. A 429 triggers one retry with a reduced batch after a
// fixed backoff; any other failure yields an empty slice.
func (c *Client) Recommend(ctx context.Context, seedID string, features domain.AudioFeatures, size int) []domain.Track {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	resp, status := c.call(ctx, seedID, features, size)
	if status == http.StatusOK {
		return resp
	}
	if status != http.StatusTooManyRequests {
		return nil
	}

	log.Printf("WARN reccobeats: throttled on seed %s, retrying once with batch %d", seedID, reducedBatchSize)
	if err := sleepWithContext(ctx, c.backoff); err != nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	resp, status = c.call(ctx, seedID, features, reducedBatchSize)
	if status == http.StatusOK {
		return resp
	}
	return nil
}

// call performs one request. The returned status is 0 on transport or
// decode failure, which callers treat the same as any non-200.
func (c *Client) call(ctx context.Context, seedID string, features domain.AudioFeatures, size int) ([]domain.Track, int) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, 0
	}
	q := reqURL.Query()
	q.Set("seeds", seedID)
	q.Set("size", strconv.Itoa(size))
	for name, value := range features.Map() {
		q.Set(name, strconv.FormatFloat(value, 'f', -1, 64))
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, 0
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN reccobeats: request for seed %s failed: %v", seedID, err)
		return nil, 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode
	}

	var body struct {
		Content []wireTrack `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("WARN reccobeats: decode for seed %s failed: %v", seedID, err)
		return nil, 0
	}

	tracks := make([]domain.Track, 0, len(body.Content))
	for _, wt := range body.Content {
		tracks = append(tracks, wt.toDomain())
	}
	return tracks, http.StatusOK
}

type wireTrack struct {
	ID         string `json:"id"`
	TrackTitle string `json:"trackTitle"`
	Popularity int    `json:"popularity"`
	Href       string `json:"href"`
	Artists    []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
}

func (wt wireTrack) toDomain() domain.Track {
	dt := domain.Track{
		ID:         wt.ID,
		Title:      wt.TrackTitle,
		Popularity: wt.Popularity,
		URL:        wt.Href,
	}
	if len(wt.Artists) > 0 {
		dt.Artist = wt.Artists[0].Name
		dt.ArtistID = wt.Artists[0].ID
	} else {
		dt.Artist = "Unknown"
	}
	return dt
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
