// Package progress displays live run progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"pacesmith/internal/collector"
)

// Progress prints a once-per-second status line while a run is in flight,
// overwriting itself with ANSI escapes. It reads counts straight from the
// collector, mirroring what the final summary will report.
type Progress struct {
	startTime time.Time
	collector *collector.Collector
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopped   atomic.Bool
	quiet     bool
	output    io.Writer
	mu        sync.Mutex
}

// NewProgress creates a progress indicator. If quiet is true, nothing is
// ever printed.
func NewProgress(c *collector.Collector, quiet bool) *Progress {
	return &Progress{
		collector: c,
		quiet:     quiet,
		output:    os.Stderr,
	}
}

// SetOutput sets the output writer for progress display.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Start begins displaying progress updates every second.
func (p *Progress) Start() {
	if p.quiet {
		return
	}
	p.startTime = time.Now()
	p.stopCh = make(chan struct{})
	p.ticker = time.NewTicker(1 * time.Second)
	go p.run()
}

func (p *Progress) run() {
	for {
		select {
		case <-p.stopCh:
			return
		case <-p.ticker.C:
			p.printProgress()
		}
	}
}

func (p *Progress) printProgress() {
	total, failures := p.collector.Counts()
	elapsed := time.Since(p.startTime).Round(time.Second)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60

	var eps float64
	if s := time.Since(p.startTime).Seconds(); s > 0 {
		eps = float64(total) / s
	}

	p.mu.Lock()
	if failures > 0 {
		fmt.Fprintf(p.output, "\033[K[%02d:%02d] Events: %d | Rate: %.1f/s | Errors: %d",
			mins, secs, total, eps, failures)
	} else {
		fmt.Fprintf(p.output, "\033[K[%02d:%02d] Events: %d | Rate: %.1f/s",
			mins, secs, total, eps)
	}
	p.mu.Unlock()
}

// Stop halts the progress display and clears the line.
func (p *Progress) Stop() {
	if p.quiet || p.stopped.Swap(true) {
		return
	}
	if p.ticker != nil {
		p.ticker.Stop()
	}
	if p.stopCh != nil {
		close(p.stopCh)
	}
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K")
	p.mu.Unlock()
}

// Print outputs a message, clearing the progress line first.
func (p *Progress) Print(message string) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K%s\n", message)
	p.mu.Unlock()
}

// Printf outputs a formatted message, clearing the progress line first.
func (p *Progress) Printf(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K"+format+"\n", args...)
	p.mu.Unlock()
}
