package services

import (
	"sync"
	"testing"
)

func TestSeenArtistsAddIsCaseInsensitive(t *testing.T) {
	seen := NewSeenArtists()

	if !seen.Add("Drake") {
		t.Fatal("first add should win")
	}
	if seen.Add("drake") {
		t.Fatal("second add of the same artist should lose")
	}
	if !seen.Contains("DRAKE") {
		t.Fatal("contains should ignore case")
	}
}

func TestSeenArtistsSnapshotIsDetached(t *testing.T) {
	seen := NewSeenArtists()
	seen.Add("Mitski")

	snapshot := seen.Snapshot()
	seen.Add("Phoebe Bridgers")

	if _, ok := snapshot["mitski"]; !ok {
		t.Fatal("snapshot should hold earlier entries")
	}
	if _, ok := snapshot["phoebe bridgers"]; ok {
		t.Fatal("snapshot should not see later adds")
	}
}

func TestSeenArtistsConcurrentAddSingleWinner(t *testing.T) {
	seen := NewSeenArtists()

	const goroutines = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if seen.Add("Drake") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var count int
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("winners: got %d, want 1", count)
	}
}
