package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"pacesmith/internal/collector"
	"pacesmith/internal/core"
)

// syncBuffer wraps bytes.Buffer for concurrent writes from the progress goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgress_QuietSuppressesOutput(t *testing.T) {
	c := collector.NewCollector()
	defer c.Close()

	var buf syncBuffer
	p := NewProgress(c, true)
	p.SetOutput(&buf)

	p.Start()
	p.Print("hello")
	p.Printf("formatted %d", 42)
	p.Stop()

	if buf.String() != "" {
		t.Errorf("quiet mode must not write, got %q", buf.String())
	}
}

func TestProgress_Print(t *testing.T) {
	c := collector.NewCollector()
	defer c.Close()

	var buf syncBuffer
	p := NewProgress(c, false)
	p.SetOutput(&buf)

	p.Print("starting run")
	if !strings.Contains(buf.String(), "starting run") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestProgress_DisplaysCounts(t *testing.T) {
	c := collector.NewCollector()

	var buf syncBuffer
	p := NewProgress(c, false)
	p.SetOutput(&buf)

	for i := 0; i < 5; i++ {
		c.Report(core.Event{Success: true})
	}

	p.Start()
	time.Sleep(1100 * time.Millisecond)
	p.Stop()
	c.Close()

	if !strings.Contains(buf.String(), "Events: 5") {
		t.Errorf("expected event count in progress line, got %q", buf.String())
	}
}

func TestProgress_StopIdempotent(t *testing.T) {
	c := collector.NewCollector()
	defer c.Close()

	p := NewProgress(c, false)
	p.SetOutput(&syncBuffer{})

	p.Start()
	p.Stop()
	p.Stop() // second call must not panic or double-close
}
