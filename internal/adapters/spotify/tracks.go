package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
)

// GetTrack fetches track detail by catalog ID.
func (c *Client) GetTrack(ctx context.Context, id string) (domain.TrackDetail, error) {
	reqURL := fmt.Sprintf("%s/tracks/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.TrackDetail{}, fmt.Errorf("catalog: create track request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.TrackDetail{}, fmt.Errorf("catalog: track request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.TrackDetail{}, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.TrackDetail{}, fmt.Errorf("catalog: track status %d", resp.StatusCode)
	}

	var st spotifyTrack
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return domain.TrackDetail{}, fmt.Errorf("catalog: track decode error: %w", err)
	}

	return domain.TrackDetail{
		ID:         st.ID,
		Title:      st.Name,
		Album:      st.Album.Name,
		PreviewURL: st.PreviewURL,
	}, nil
}

// GetArtistTopTracks lists an artist's top tracks for a market.
func (c *Client) GetArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error) {
	reqURL := fmt.Sprintf("%s/artists/%s/top-tracks?market=%s", c.baseURL, url.PathEscape(artistID), url.QueryEscape(market))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create top-tracks request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: top-tracks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: top-tracks status %d", resp.StatusCode)
	}

	var body struct {
		Tracks []spotifyTrack `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: top-tracks decode error: %w", err)
	}

	tracks := make([]domain.Track, 0, len(body.Tracks))
	for _, st := range body.Tracks {
		tracks = append(tracks, mapTrackToDomain(st))
	}
	return tracks, nil
}
