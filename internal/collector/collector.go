// Package collector aggregates events from streams and computes run statistics.
package collector

import (
	"sync"
	"time"

	"pacesmith/internal/core"
)

// Collector receives events from streams and stores them for analysis.
type Collector struct {
	events    []core.Event
	ch        chan core.Event
	done      chan struct{}
	mu        sync.Mutex
	startTime time.Time
	endTime   time.Time
}

// NewCollector creates a new Collector and starts its collection goroutine.
func NewCollector() *Collector {
	c := &Collector{
		events:    make([]core.Event, 0),
		ch:        make(chan core.Event, 4096),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	go c.collect()
	return c
}

func (c *Collector) collect() {
	for event := range c.ch {
		c.mu.Lock()
		c.events = append(c.events, event)
		c.mu.Unlock()
	}
	close(c.done)
}

// Report sends an event to the collector. Thread-safe. Events are dropped
// when the channel is full rather than stalling a stream's timing loop.
func (c *Collector) Report(event core.Event) {
	select {
	case c.ch <- event:
	default:
	}
}

// Close signals the collector to stop accepting events and waits for the
// collection goroutine to drain.
func (c *Collector) Close() {
	c.endTime = time.Now()
	close(c.ch)
	<-c.done
}

// Events returns a copy of collected events.
func (c *Collector) Events() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]core.Event, len(c.events))
	copy(result, c.events)
	return result
}

// Counts returns the current total and failure counts. Used by the live
// progress display while a run is still in flight.
func (c *Collector) Counts() (total, failures int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if !e.Success {
			failures++
		}
	}
	return len(c.events), failures
}

// Duration returns the run duration: start to Close if closed, start to now
// otherwise.
func (c *Collector) Duration() time.Duration {
	if !c.endTime.IsZero() {
		return c.endTime.Sub(c.startTime)
	}
	return time.Since(c.startTime)
}
