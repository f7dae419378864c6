// Package lastfm implements the tag-database port against the Last.fm
// API. Lookups are memoized for the life of the process; absence and
// transport failures surface as "does not exist" / "no tags", never as
// errors.
package lastfm

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

const defaultBaseURL = "http://ws.audioscrobbler.com/2.0/"

type queryKind string

const (
	kindExists     queryKind = "exists"
	kindTrackTags  queryKind = "track_tags"
	kindArtistTags queryKind = "artist_tags"
)

var kindMethods = map[queryKind]string{
	kindExists:     "track.getInfo",
	kindTrackTags:  "track.getTopTags",
	kindArtistTags: "artist.getTopTags",
}

type cacheKey struct {
	artist string
	track  string
	kind   queryKind
}

type cacheEntry struct {
	exists bool
	tags   []string
}

// Client is the tag-database client. One instance serves the whole
// pipeline run; the cache is never invalidated.
type Client struct {
	rc     *resty.Client
	apiKey string

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

var _ ports.TagProvider = (*Client)(nil)

// NewClient constructs a tag client. baseURL is overridable for tests.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)
	return &Client{
		rc:     rc,
		apiKey: apiKey,
		cache:  make(map[cacheKey]cacheEntry),
	}
}

// TrackExists reports whether the database knows the track.
func (c *Client) TrackExists(ctx context.Context, artist, track string) bool {
	entry, ok := c.lookup(ctx, artist, track, kindExists)
	return ok && entry.exists
}

// TrackTags returns the track's top tags, lowercased.
func (c *Client) TrackTags(ctx context.Context, artist, track string) []string {
	entry, _ := c.lookup(ctx, artist, track, kindTrackTags)
	return entry.tags
}

// ArtistTags returns the artist's top tags, lowercased.
func (c *Client) ArtistTags(ctx context.Context, artist, track string) []string {
	entry, _ := c.lookup(ctx, artist, track, kindArtistTags)
	return entry.tags
}

// lookup performs one memoized API call. Failed calls return the
// neutral entry and are deliberately not cached, so a transient outage
// does not pin a false negative for the rest of the process.
func (c *Client) lookup(ctx context.Context, artist, track string, kind queryKind) (cacheEntry, bool) {
	key := cacheKey{artist: artist, track: track, kind: kind}

	c.mu.Lock()
	cached, hit := c.cache[key]
	c.mu.Unlock()
	if hit {
		return cached, true
	}

	req := c.rc.R().
		SetContext(ctx).
		SetQueryParam("method", kindMethods[kind]).
		SetQueryParam("artist", artist).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("format", "json").
		SetQueryParam("autocorrect", "1")
	if kind != kindArtistTags {
		req.SetQueryParam("track", track)
	}

	resp, err := req.Get("")
	if err != nil {
		log.Printf("WARN lastfm: %s lookup for %q/%q failed: %v", kind, artist, track, err)
		return cacheEntry{}, false
	}
	if resp.StatusCode() != 200 {
		return cacheEntry{}, false
	}

	entry := parseBody(kind, resp.Body())

	c.mu.Lock()
	c.cache[key] = entry
	c.mu.Unlock()
	return entry, true
}

func parseBody(kind queryKind, body []byte) cacheEntry {
	if kind == kindExists {
		var payload struct {
			Track json.RawMessage `json:"track"`
			Error int             `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return cacheEntry{}
		}
		return cacheEntry{exists: len(payload.Track) > 0 && payload.Error == 0}
	}

	var payload struct {
		TopTags struct {
			Tag json.RawMessage `json:"tag"`
		} `json:"toptags"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return cacheEntry{}
	}
	return cacheEntry{tags: parseTags(payload.TopTags.Tag)}
}

// parseTags handles the API quirk of returning either a list of tag
// objects or a single bare object when only one tag exists.
func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	type wireTag struct {
		Name string `json:"name"`
	}

	var list []wireTag
	if err := json.Unmarshal(raw, &list); err == nil {
		tags := make([]string, 0, len(list))
		for _, t := range list {
			if t.Name != "" {
				tags = append(tags, lower(t.Name))
			}
		}
		return tags
	}

	var single wireTag
	if err := json.Unmarshal(raw, &single); err == nil && single.Name != "" {
		return []string{lower(single.Name)}
	}
	return nil
}

func lower(s string) string { return strings.ToLower(s) }
