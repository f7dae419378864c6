// Package emotion provides an adapter for the hosted emotion
// classification model. The model is a black box: text goes in, a
// label-to-score distribution comes out, and only labels above the
// confidence threshold survive.
package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

const scoreThreshold = 0.5

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.EmotionClassifier = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends text to the inference service and returns the emotion
// distribution in the model's output order, keeping only labels whose
// score clears the threshold.
func (c *Client) Classify(ctx context.Context, text string) (domain.EmotionScores, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("emotion: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("emotion: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("emotion: unexpected status %d", resp.StatusCode)
	}

	var parsed [][]labelScore
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("emotion: decode response: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("emotion: empty response")
	}

	scores := make(domain.EmotionScores, 0, len(parsed[0]))
	for _, ls := range parsed[0] {
		if ls.Score < scoreThreshold {
			continue
		}
		scores = append(scores, domain.EmotionScore{Label: ls.Label, Score: ls.Score})
	}
	return scores, nil
}
