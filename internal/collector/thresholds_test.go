package collector

import (
	"testing"
	"time"
)

func TestThresholds_AllPass(t *testing.T) {
	th := &Thresholds{
		MaxRateDeviation: 0.20,
		MaxGapP99:        time.Second,
		MinEvents:        5,
	}
	m := &Metrics{
		TotalEvents:  100,
		EventsPerSec: 95,
		Gap:          DurationMetrics{P99: 500 * time.Millisecond},
	}

	results := th.Check(m, 100)
	if !results.Passed {
		t.Errorf("expected pass, got %+v", results.Results)
	}
	if len(results.Results) != 3 {
		t.Errorf("expected 3 checks, got %d", len(results.Results))
	}
}

func TestThresholds_RateDeviationFails(t *testing.T) {
	th := &Thresholds{MaxRateDeviation: 0.10}
	m := &Metrics{TotalEvents: 50, EventsPerSec: 50}

	results := th.Check(m, 100)
	if results.Passed {
		t.Error("expected failure for 50% rate deviation against a 10% bound")
	}
	if len(results.Violations()) != 1 {
		t.Errorf("expected 1 violation, got %d", len(results.Violations()))
	}
}

func TestThresholds_GapP99Fails(t *testing.T) {
	th := &Thresholds{MaxGapP99: 10 * time.Millisecond}
	m := &Metrics{Gap: DurationMetrics{P99: 50 * time.Millisecond}}

	results := th.Check(m, 0)
	if results.Passed {
		t.Error("expected failure for p99 gap above bound")
	}
}

func TestThresholds_Unset(t *testing.T) {
	th := &Thresholds{}
	results := th.Check(&Metrics{}, 100)
	if !results.Passed || len(results.Results) != 0 {
		t.Errorf("unset thresholds must produce no checks, got %+v", results)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500µs"},
		{25 * time.Millisecond, "25ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v): expected %q, got %q", tt.d, tt.expected, got)
		}
	}
}
