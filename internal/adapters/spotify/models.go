package spotify

import "github.com/moodlifter-labs/moodlifter/internal/core/domain"

// spotifyArtist is an artist reference inside a track payload.
type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// spotifyTrack is the wire form of a track in search and top-track
// responses.
type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Popularity int             `json:"popularity"`
	PreviewURL string          `json:"preview_url"`
	Artists    []spotifyArtist `json:"artists"`
	Album      struct {
		Name string `json:"name"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// mapTrackToDomain flattens a wire track to the domain shape. Only the
// first credited artist carries attribution downstream.
func mapTrackToDomain(st spotifyTrack) domain.Track {
	dt := domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		Popularity: st.Popularity,
		PreviewURL: st.PreviewURL,
		URL:        st.ExternalURLs.Spotify,
	}
	if len(st.Artists) > 0 {
		dt.Artist = st.Artists[0].Name
		dt.ArtistID = st.Artists[0].ID
	}
	return dt
}
