package domain

import "strings"

// normalizeTitle lowercases a title and strips any featuring suffix.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	if i := strings.Index(t, "(feat"); i >= 0 {
		t = t[:i]
	}
	if i := strings.Index(t, "ft."); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// SameSong reports whether two tracks represent the same underlying
// song: identical normalized titles, or the same artist with one
// normalized title containing the other.
func SameSong(a, b Track) bool {
	titleA := normalizeTitle(a.Title)
	titleB := normalizeTitle(b.Title)
	artistA := strings.ToLower(a.Artist)
	artistB := strings.ToLower(b.Artist)

	if titleA == titleB {
		return true
	}
	return artistA == artistB && (strings.Contains(titleA, titleB) || strings.Contains(titleB, titleA))
}
