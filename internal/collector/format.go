package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FormatText writes metrics in human-readable format.
func FormatText(w io.Writer, m *Metrics, thresholds *ThresholdResults) {
	if m.TotalEvents == 0 {
		fmt.Fprintln(w, "No events collected")
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "PaceSmith - Run Results")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Duration:       %v\n", m.RunDuration.Round(time.Millisecond))
	fmt.Fprintf(w, "Total Events:   %s\n", formatNumber(m.TotalEvents))
	fmt.Fprintf(w, "Events/sec:     %.1f\n", m.EventsPerSec)
	if m.FailureCount > 0 || m.Action.Max > 0 {
		fmt.Fprintf(w, "Success Rate:   %.1f%% (%s / %s)\n",
			m.SuccessRate, formatNumber(m.SuccessCount), formatNumber(m.TotalEvents))
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Interarrival Gaps:")
	fmt.Fprintf(w, "  Min:    %s\n", FormatDuration(m.Gap.Min))
	fmt.Fprintf(w, "  Avg:    %s\n", FormatDuration(m.Gap.Avg))
	fmt.Fprintf(w, "  P50:    %s\n", FormatDuration(m.Gap.P50))
	fmt.Fprintf(w, "  P90:    %s\n", FormatDuration(m.Gap.P90))
	fmt.Fprintf(w, "  P95:    %s\n", FormatDuration(m.Gap.P95))
	fmt.Fprintf(w, "  P99:    %s\n", FormatDuration(m.Gap.P99))
	fmt.Fprintf(w, "  Max:    %s\n", FormatDuration(m.Gap.Max))

	if m.Action.Max > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Action Times:")
		fmt.Fprintf(w, "  Min:    %s\n", FormatDuration(m.Action.Min))
		fmt.Fprintf(w, "  Avg:    %s\n", FormatDuration(m.Action.Avg))
		fmt.Fprintf(w, "  P95:    %s\n", FormatDuration(m.Action.P95))
		fmt.Fprintf(w, "  P99:    %s\n", FormatDuration(m.Action.P99))
		fmt.Fprintf(w, "  Max:    %s\n", FormatDuration(m.Action.Max))
	}

	if thresholds != nil && len(thresholds.Results) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Thresholds:")
		for _, result := range thresholds.Results {
			symbol := "✓"
			if !result.Passed {
				symbol = "✗"
			}
			fmt.Fprintf(w, "  %s %s %s (actual: %s)\n",
				symbol, result.Name, result.Threshold, result.Actual)
		}
	}
}

// FormatJSON writes metrics in JSON format.
func FormatJSON(w io.Writer, m *Metrics, thresholds *ThresholdResults) {
	output := struct {
		Duration     string              `json:"duration"`
		TotalEvents  int                 `json:"totalEvents"`
		SuccessCount int                 `json:"successCount"`
		FailureCount int                 `json:"failureCount"`
		SuccessRate  float64             `json:"successRate"`
		EventsPerSec float64             `json:"eventsPerSec"`
		Gaps         jsonDurationMetrics `json:"gaps"`
		Actions      jsonDurationMetrics `json:"actions"`
		Thresholds   *ThresholdResults   `json:"thresholds,omitempty"`
	}{
		Duration:     m.RunDuration.Round(time.Millisecond).String(),
		TotalEvents:  m.TotalEvents,
		SuccessCount: m.SuccessCount,
		FailureCount: m.FailureCount,
		SuccessRate:  m.SuccessRate,
		EventsPerSec: m.EventsPerSec,
		Gaps:         toJSONDurationMetrics(m.Gap),
		Actions:      toJSONDurationMetrics(m.Action),
		Thresholds:   thresholds,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}

type jsonDurationMetrics struct {
	Min string `json:"min"`
	Max string `json:"max"`
	Avg string `json:"avg"`
	P50 string `json:"p50"`
	P90 string `json:"p90"`
	P95 string `json:"p95"`
	P99 string `json:"p99"`
}

func toJSONDurationMetrics(d DurationMetrics) jsonDurationMetrics {
	return jsonDurationMetrics{
		Min: FormatDuration(d.Min),
		Max: FormatDuration(d.Max),
		Avg: FormatDuration(d.Avg),
		P50: FormatDuration(d.P50),
		P90: FormatDuration(d.P90),
		P95: FormatDuration(d.P95),
		P99: FormatDuration(d.P99),
	}
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + fmt.Sprintf(",%03d", n%1000)
}
