// Package trace provides verbose per-event logging for debugging runs.
package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger writes one line per generated event. A nil *Logger is valid and
// discards everything, so callers can pass it through unconditionally.
type Logger struct {
	out io.Writer
	mu  sync.Mutex
}

// NewLogger creates a trace logger that writes to the given writer.
func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

// LogEvent logs a scheduled event with its preceding interarrival gap.
func (l *Logger) LogEvent(streamID int, ts time.Time, gap time.Duration) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[stream %d] event at %s gap=%v\n",
		streamID, ts.Format("15:04:05.000000"), gap)
}

// LogError logs an action failure with its execution time.
func (l *Logger) LogError(streamID int, errMsg string, duration time.Duration) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[stream %d] !!! ERROR (%v): %s\n",
		streamID, duration.Round(time.Millisecond), errMsg)
}
