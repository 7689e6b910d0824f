// Package core defines the fundamental types shared by PaceSmith packages.
package core

import "time"

// Event records one generated occurrence from a stream.
type Event struct {
	StreamID  int
	Timestamp time.Time     // scheduled instant the event fired at
	Gap       time.Duration // interarrival gap preceding this event (zero for the first)
	Duration  time.Duration // how long the action took (zero for counting-only runs)
	Success   bool
	Error     string
}

// Action is invoked once per generated event with the scheduled timestamp.
type Action func(timestamp time.Time)

// Reporter is the interface streams use to send events to the Collector.
type Reporter interface {
	Report(Event)
}
