// Package poisson generates event timestamps that follow a Poisson process.
//
// A Poisson arrival process schedules the next event independently of when
// the previous action finished, which avoids the coordinated-omission bias
// that plagues closed-loop load generators: a slow action does not suppress
// the events that should have been issued while it ran.
package poisson

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxRate is the highest supported rate in events per second. Interarrival
// gaps are measured in whole nanoseconds, so rates above 1e9/s cannot be
// represented without losing precision.
const MaxRate = 1e9

// Scheduler invokes an action at timestamps drawn from a Poisson process
// with a fixed average rate. Each Scheduler owns a private random source;
// nothing is shared between instances, so independent streams can run on
// separate goroutines by giving each its own Scheduler.
//
// A Scheduler is not safe for concurrent use. Run consumes the calling
// goroutine and must not be invoked concurrently on the same instance.
type Scheduler struct {
	exp distuv.Exponential
}

// NewScheduler creates a Scheduler that generates events at the given
// average rate in events per second.
//
// NewScheduler panics if rate exceeds MaxRate or is not strictly positive.
// Both are caller misconfiguration, not runtime conditions: a scheduler
// built from an invalid rate would silently produce meaningless timing, so
// construction fails fast instead of returning a recoverable error.
func NewScheduler(rate float64) *Scheduler {
	if rate > MaxRate {
		panic(fmt.Sprintf("poisson: rate %g events/s exceeds the 1e9 limit", rate))
	}
	lambda := rate / 1e9 // intensity in events per nanosecond
	if !(lambda > 0) { // negated so NaN is rejected too
		panic(fmt.Sprintf("poisson: rate %g events/s yields an invalid exponential intensity", rate))
	}
	return &Scheduler{
		exp: distuv.Exponential{
			Rate: lambda,
			Src:  rand.NewSource(newSeed()),
		},
	}
}

var seedSeq atomic.Uint64

// newSeed derives a per-instance seed. The counter keeps seeds distinct even
// when two schedulers are constructed within the same clock tick, so
// concurrent streams never share a sample sequence.
func newSeed() uint64 {
	return uint64(time.Now().UnixNano()) + seedSeq.Add(1)
}

// Run generates events for approximately the given runtime, invoking action
// synchronously at each scheduled timestamp. The timestamp passed to the
// action is the scheduled instant, not the instant the action started.
//
// Timestamps are strictly increasing across invocations and the first is
// never before the instant Run was called. The runtime bound is re-checked
// only between iterations, so a run can overshoot by up to one interarrival
// gap plus one action execution; the gap drawn for the final iteration is
// spent even when the loop then stops.
func (s *Scheduler) Run(runtime time.Duration, action func(timestamp time.Time)) {
	end := time.Now().Add(runtime)
	for time.Now().Before(end) {
		gap := time.Duration(s.exp.Rand()) // whole nanoseconds, truncated toward zero
		next := time.Now().Add(gap)
		waitUntil(next)
		action(next)
	}
}

// waitUntil blocks until the wall clock reaches target by polling time.Now
// in a tight loop. Sleeping instead would be cheaper but the scheduler
// granularity of common platforms is milliseconds or worse, far too coarse
// for the sub-millisecond gaps of a high-rate process. Burning CPU here is
// the price of timing precision.
func waitUntil(target time.Time) {
	for time.Now().Before(target) {
	}
}
