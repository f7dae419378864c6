// Package genius implements the optional lyrics-based language
// confirmation against the Genius API. Every failure path is fail-open:
// a song only counts as non-English when the API positively says so.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

const defaultBaseURL = "https://api.genius.com"

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

var _ ports.LyricsProvider = (*Client)(nil)

// NewClient constructs a lyrics client. baseURL is overridable for
// tests.
func NewClient(httpClient *http.Client, baseURL, accessToken string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
	}
}

// SongIsEnglish looks the song up and reads the language off the first
// search hit. Missing songs, missing language metadata and any request
// failure all report true.
func (c *Client) SongIsEnglish(ctx context.Context, artist, title string) bool {
	reqURL := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(title+" "+artist))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return true
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN genius: lookup for %q by %q failed: %v", title, artist, err)
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true
	}

	var body struct {
		Response struct {
			Hits []struct {
				Result struct {
					Language string `json:"language"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return true
	}
	if len(body.Response.Hits) == 0 {
		return true
	}

	lang := body.Response.Hits[0].Result.Language
	return lang == "" || lang == "en"
}
