package collector

import (
	"sort"
	"time"

	"pacesmith/internal/core"
)

// Metrics contains aggregated results from one run.
type Metrics struct {
	TotalEvents  int
	SuccessCount int
	FailureCount int
	SuccessRate  float64 // percentage
	EventsPerSec float64
	RunDuration  time.Duration
	Gap          DurationMetrics // interarrival gaps between consecutive events
	Action       DurationMetrics // action execution times (zero for counting-only runs)
}

// DurationMetrics contains latency-style statistics over a set of durations.
type DurationMetrics struct {
	Min time.Duration
	Max time.Duration
	Avg time.Duration
	P50 time.Duration
	P90 time.Duration
	P95 time.Duration
	P99 time.Duration
}

// ComputeMetrics computes metrics from events. Pure function, no side effects.
func ComputeMetrics(events []core.Event, runDuration time.Duration) *Metrics {
	m := &Metrics{RunDuration: runDuration}

	if len(events) == 0 {
		return m
	}

	gaps := make([]time.Duration, 0, len(events))
	actions := make([]time.Duration, 0, len(events))

	for _, e := range events {
		m.TotalEvents++
		if e.Success {
			m.SuccessCount++
		} else {
			m.FailureCount++
		}
		if e.Gap > 0 {
			gaps = append(gaps, e.Gap)
		}
		if e.Duration > 0 {
			actions = append(actions, e.Duration)
		}
	}

	m.SuccessRate = float64(m.SuccessCount) / float64(m.TotalEvents) * 100
	if runDuration > 0 {
		m.EventsPerSec = float64(m.TotalEvents) / runDuration.Seconds()
	}
	m.Gap = ComputeDurationMetrics(gaps)
	m.Action = ComputeDurationMetrics(actions)

	return m
}

// ComputePercentile calculates the percentile value from a sorted slice of
// durations using the nearest-rank method. The percentile p should be
// between 0 and 1 (e.g., 0.95 for p95).
func ComputePercentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}

// ComputeDurationMetrics calculates all duration statistics from a slice of
// durations.
func ComputeDurationMetrics(durations []time.Duration) DurationMetrics {
	if len(durations) == 0 {
		return DurationMetrics{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return DurationMetrics{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: total / time.Duration(len(sorted)),
		P50: ComputePercentile(sorted, 0.50),
		P90: ComputePercentile(sorted, 0.90),
		P95: ComputePercentile(sorted, 0.95),
		P99: ComputePercentile(sorted, 0.99),
	}
}
