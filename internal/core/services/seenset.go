package services

import (
	"strings"
	"sync"
)

// SeenArtists is the pipeline's shared artist dedup set. Concurrent
// validation and aggregation tasks all contend on it, so membership
// checks and inserts are exposed as one atomic Add; callers must never
// split the check from the insert.
type SeenArtists struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func NewSeenArtists() *SeenArtists {
	return &SeenArtists{set: make(map[string]struct{})}
}

// Add inserts the artist (case-insensitively) and reports whether it
// was absent before the call.
func (s *SeenArtists) Add(artist string) bool {
	key := strings.ToLower(artist)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[key]; ok {
		return false
	}
	s.set[key] = struct{}{}
	return true
}

// Contains reports current membership. Use only for cheap pre-checks;
// acceptance decisions go through Add.
func (s *SeenArtists) Contains(artist string) bool {
	key := strings.ToLower(artist)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[key]
	return ok
}

// Snapshot copies the current membership for handing to concurrent
// validation tasks. The copy is read-only from the caller's side.
func (s *SeenArtists) Snapshot() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.set))
	for k := range s.set {
		out[k] = struct{}{}
	}
	return out
}
