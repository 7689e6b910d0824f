package main

import (
	"context"
	"testing"
	"time"

	"pacesmith/internal/collector"
	"pacesmith/internal/config"
)

func TestRunPhases_SingleRun(t *testing.T) {
	cfg := &config.Config{Rate: 100, Duration: 5 * time.Second}
	phases := runPhases(cfg)
	if len(phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(phases))
	}
	if phases[0].Rate != 100 || phases[0].Duration != 5*time.Second {
		t.Errorf("phase does not carry flag values: %+v", phases[0])
	}
}

func TestRunPhases_Profile(t *testing.T) {
	cfg := &config.Config{
		Profile: &config.Profile{Phases: []config.Phase{
			{Name: "warmup", Duration: time.Second, Rate: 10},
			{Name: "peak", Duration: 2 * time.Second, Rate: 100},
		}},
	}
	phases := runPhases(cfg)
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if totalDuration(phases) != 3*time.Second {
		t.Errorf("expected total 3s, got %v", totalDuration(phases))
	}
}

func TestAggregateRate(t *testing.T) {
	phases := []config.Phase{
		{Duration: time.Second, Rate: 10},
		{Duration: time.Second, Rate: 30},
	}
	// Weighted average 20/s per stream, doubled across 2 streams.
	if got := aggregateRate(phases, 2); got != 40 {
		t.Errorf("expected aggregate rate 40, got %g", got)
	}
}

func TestAggregateRate_EmptyPhases(t *testing.T) {
	if got := aggregateRate(nil, 3); got != 0 {
		t.Errorf("expected 0 for empty phases, got %g", got)
	}
}

func TestRunStream_CountingEvents(t *testing.T) {
	coll := collector.NewCollector()
	phases := []config.Phase{{Name: "run", Duration: 200 * time.Millisecond, Rate: 500}}

	runStream(context.Background(), 1, config.ModelPoisson, phases, nil, coll, nil)
	coll.Close()

	events := coll.Events()
	if len(events) == 0 {
		t.Fatal("expected events from a 500/s run over 200ms")
	}
	for i, ev := range events {
		if ev.StreamID != 1 {
			t.Errorf("event %d: expected stream 1, got %d", i, ev.StreamID)
		}
		if !ev.Success {
			t.Errorf("event %d: counting events must be successful", i)
		}
		if i > 0 && ev.Gap <= 0 {
			t.Errorf("event %d: expected positive gap, got %v", i, ev.Gap)
		}
	}
	if events[0].Gap != 0 {
		t.Error("first event of a stream must carry no gap")
	}
}

func TestRunStream_UniformCancelled(t *testing.T) {
	coll := collector.NewCollector()
	phases := []config.Phase{{Name: "run", Duration: 10 * time.Second, Rate: 2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runStream(ctx, 1, config.ModelUniform, phases, nil, coll, nil)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled uniform stream did not stop")
	}
	coll.Close()
}
