package stream

import (
	"sort"
	"sync"
	"testing"
)

func TestSpawner_RunsAllStreams(t *testing.T) {
	var s Spawner

	var mu sync.Mutex
	var ids []int

	s.Spawn(5, func(streamID int) {
		mu.Lock()
		ids = append(ids, streamID)
		mu.Unlock()
	})
	s.Wait()

	if len(ids) != 5 {
		t.Fatalf("expected 5 streams, got %d", len(ids))
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("expected sequential IDs 1..5, got %v", ids)
			break
		}
	}
}

func TestSpawner_IDsUniqueAcrossSpawns(t *testing.T) {
	var s Spawner

	var mu sync.Mutex
	seen := make(map[int]bool)
	record := func(streamID int) {
		mu.Lock()
		if seen[streamID] {
			t.Errorf("duplicate stream ID %d", streamID)
		}
		seen[streamID] = true
		mu.Unlock()
	}

	s.Spawn(3, record)
	s.Spawn(3, record)
	s.Wait()

	if len(seen) != 6 {
		t.Errorf("expected 6 unique IDs, got %d", len(seen))
	}
}

func TestSpawner_ZeroCount(t *testing.T) {
	var s Spawner
	s.Spawn(0, func(int) { t.Error("runner must not be called") })
	s.Wait()
}
