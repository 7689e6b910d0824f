// Package stream runs independent generator instances on their own goroutines.
package stream

import (
	"sync"
	"sync/atomic"
)

// Runner executes one stream's generation loop. Each invocation receives a
// unique stream ID and must construct its own scheduler so that no random
// source or timing state is shared between streams.
type Runner func(streamID int)

// Spawner launches streams and waits for them to finish.
type Spawner struct {
	nextID atomic.Int64
	wg     sync.WaitGroup
}

// Spawn launches count goroutines, each running the given runner with a
// unique stream ID. IDs are assigned sequentially starting at 1 and stay
// unique across multiple Spawn calls.
func (s *Spawner) Spawn(count int, run Runner) {
	for i := 0; i < count; i++ {
		id := int(s.nextID.Add(1))
		s.wg.Add(1)
		go func(id int) {
			defer s.wg.Done()
			run(id)
		}(id)
	}
}

// Wait blocks until all spawned streams have completed.
func (s *Spawner) Wait() {
	s.wg.Wait()
}
