package domain

import (
	"strings"
	"unicode"
)

// genreEntry pairs a canonical genre with its alias tags. The slice
// fixes iteration order so attribution tie-breaks are deterministic.
type genreEntry struct {
	name    string
	aliases []string
}

var genreTaxonomy = []genreEntry{
	{"rap", []string{"rap", "hip-hop", "hip hop", "hiphop", "trap", "conscious hip hop", "underground rap", "neo", "retro"}},
	{"rock", []string{"rock", "alternative rock", "hard rock", "indie rock", "garage rock", "punk rock", "folk rock"}},
	{"pop", []string{"pop", "pop rock", "dance pop", "synth pop", "electropop"}},
	{"electronic", []string{"electronic", "edm", "techno", "house", "trance", "dubstep", "drum and bass"}},
	{"r&b", []string{"r&b", "rnb", "soul", "neo soul", "contemporary r&b"}},
	{"country", []string{"country", "country rock", "americana", "outlaw country", "country pop"}},
	{"jazz", []string{"jazz", "smooth jazz", "bebop", "fusion", "cool jazz", "modal jazz"}},
	{"classical", []string{"classical", "orchestra", "symphony", "chamber music", "baroque"}},
	{"metal", []string{"metal", "heavy metal", "thrash metal", "death metal", "black metal", "doom metal"}},
	{"indie", []string{"indie", "indie pop", "indie folk", "indie electronic", "alternative"}},
	{"folk", []string{"folk", "acoustic", "singer-songwriter", "traditional folk"}},
	{"latin", []string{"latin", "latin pop", "reggaeton", "salsa", "bachata", "cumbia"}},
	{"blues", []string{"blues", "rhythm and blues", "electric blues", "chicago blues", "delta blues"}},
	{"reggae", []string{"reggae", "dancehall", "ska", "dub", "roots reggae"}},
}

// GenreFor attributes a canonical genre to a set of fetched tags. The
// first canonical genre whose alias set contains any tag wins; without a
// taxonomy hit the first raw tag is returned verbatim, or "unknown" when
// there are no tags at all.
func GenreFor(tags []string) string {
	lowered := lowerAll(tags)
	for _, entry := range genreTaxonomy {
		for _, tag := range lowered {
			if containsString(entry.aliases, tag) {
				return entry.name
			}
		}
	}
	if len(lowered) > 0 {
		return lowered[0]
	}
	return "unknown"
}

// MatchesGenre reports whether a set of fetched tags is compatible with
// the requested genre. An empty genre matches trivially. An exact alias
// hit matches. Failing that, only the first fetched tag is split into
// alphanumeric tokens and checked for substring containment in any
// alias; the overall result follows from that single tag.
func MatchesGenre(tags []string, genre string) bool {
	if genre == "" {
		return true
	}

	aliases := aliasesFor(genre)
	lowered := lowerAll(tags)

	for _, tag := range lowered {
		if containsString(aliases, tag) {
			return true
		}
	}

	for _, tag := range lowered {
		tokens := splitTokens(tag)
		for _, alias := range aliases {
			for _, tok := range tokens {
				if tok != "" && strings.Contains(alias, tok) {
					return true
				}
			}
		}
		// Only the first tag is ever consulted here.
		return false
	}

	return false
}

func aliasesFor(genre string) []string {
	lowered := strings.ToLower(genre)
	for _, entry := range genreTaxonomy {
		if entry.name == lowered {
			return entry.aliases
		}
	}
	return []string{lowered}
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
