package collector

import (
	"fmt"
	"math"
	"time"
)

// Thresholds defines pass/fail criteria checked after a run.
type Thresholds struct {
	// MaxRateDeviation is the allowed fractional deviation of the observed
	// rate from the target rate, e.g. 0.15 for ±15%.
	MaxRateDeviation float64 `yaml:"maxRateDeviation"`
	// MaxGapP99 bounds the 99th percentile interarrival gap.
	MaxGapP99 time.Duration `yaml:"maxGapP99"`
	// MinEvents is the minimum acceptable event count.
	MinEvents int `yaml:"minEvents"`
}

// ThresholdResult represents the outcome of a single threshold check.
type ThresholdResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
}

// ThresholdResults contains all threshold check results.
type ThresholdResults struct {
	Passed  bool              `json:"passed"`
	Results []ThresholdResult `json:"results"`
}

// Check evaluates the thresholds against computed metrics. targetRate is the
// aggregate configured rate in events per second.
func (t *Thresholds) Check(m *Metrics, targetRate float64) *ThresholdResults {
	results := &ThresholdResults{Passed: true}

	if t.MaxRateDeviation > 0 && targetRate > 0 {
		deviation := math.Abs(m.EventsPerSec-targetRate) / targetRate
		results.add(ThresholdResult{
			Name:      "rate_deviation",
			Passed:    deviation <= t.MaxRateDeviation,
			Threshold: fmt.Sprintf("<= %.1f%%", t.MaxRateDeviation*100),
			Actual:    fmt.Sprintf("%.1f%%", deviation*100),
		})
	}

	if t.MaxGapP99 > 0 {
		results.add(ThresholdResult{
			Name:      "gap_p99",
			Passed:    m.Gap.P99 <= t.MaxGapP99,
			Threshold: "<= " + FormatDuration(t.MaxGapP99),
			Actual:    FormatDuration(m.Gap.P99),
		})
	}

	if t.MinEvents > 0 {
		results.add(ThresholdResult{
			Name:      "min_events",
			Passed:    m.TotalEvents >= t.MinEvents,
			Threshold: fmt.Sprintf(">= %d", t.MinEvents),
			Actual:    fmt.Sprintf("%d", m.TotalEvents),
		})
	}

	return results
}

func (r *ThresholdResults) add(result ThresholdResult) {
	r.Results = append(r.Results, result)
	if !result.Passed {
		r.Passed = false
	}
}

// Violations returns only the failed threshold results.
func (r *ThresholdResults) Violations() []ThresholdResult {
	var out []ThresholdResult
	for _, result := range r.Results {
		if !result.Passed {
			out = append(out, result)
		}
	}
	return out
}

// FormatDuration renders a duration at a precision that suits its magnitude.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
