// Command pacesmith generates events at a target average rate and reports
// how closely the realized schedule tracked it. Events follow a Poisson
// arrival process by default, so the next event's time never depends on how
// long the previous action took.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pacesmith/internal/action"
	"pacesmith/internal/collector"
	"pacesmith/internal/config"
	"pacesmith/internal/core"
	"pacesmith/internal/pacer"
	"pacesmith/internal/poisson"
	"pacesmith/internal/progress"
	"pacesmith/internal/stream"
	"pacesmith/internal/trace"
)

const (
	ExitSuccess         = 0
	ExitThresholdFailed = 1
	ExitError           = 2
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	rateFlag := flag.Float64("rate", 500, "target events per second, per stream")
	duration := flag.Duration("duration", 10*time.Second, "run duration")
	model := flag.String("model", config.ModelPoisson, "arrival model: poisson, uniform")
	streams := flag.Int("streams", 1, "number of independent streams")
	url := flag.String("url", "", "HTTP target to hit on each event (counting only if empty)")
	output := flag.String("output", "text", "output format: text, json")
	quiet := flag.Bool("quiet", false, "suppress progress output during the run")
	verbose := flag.Bool("verbose", false, "log every generated event")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{
			Rate:     *rateFlag,
			Duration: *duration,
			Model:    *model,
			Streams:  *streams,
		}
		if *url != "" {
			cfg.Target = &config.TargetConfig{URL: *url}
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}

	coll := collector.NewCollector()
	prog := progress.NewProgress(coll, *quiet)

	var tracer *trace.Logger
	if *verbose {
		tracer = trace.NewLogger(os.Stderr)
	}

	var httpAction *action.HTTP
	if cfg.Target != nil && cfg.Target.URL != "" {
		timeout := cfg.Target.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpAction = &action.HTTP{
			Method:  cfg.Target.Method,
			URL:     cfg.Target.URL,
			Headers: cfg.Target.Headers,
			Body:    cfg.Target.Body,
			Client:  &http.Client{Timeout: timeout},
		}
	}

	// Graceful shutdown: the uniform model stops on cancellation; Poisson
	// streams have no cancellation point and run out their duration.
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if !*quiet {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		}
		cancel()
	}()

	phases := runPhases(cfg)
	nStreams := cfg.EffectiveStreams()

	prog.Printf("PaceSmith starting: %d stream(s), model %s, total duration %v",
		nStreams, cfg.EffectiveModel(), totalDuration(phases))
	prog.Start()

	var spawner stream.Spawner
	spawner.Spawn(nStreams, func(streamID int) {
		runStream(ctx, streamID, cfg.EffectiveModel(), phases, httpAction, coll, tracer)
	})
	spawner.Wait()

	prog.Stop()
	coll.Close()

	metrics := collector.ComputeMetrics(coll.Events(), coll.Duration())

	var thresholdResults *collector.ThresholdResults
	if cfg.Thresholds != nil {
		thresholdResults = cfg.Thresholds.Check(metrics, aggregateRate(phases, nStreams))
	}

	if *output == "json" {
		collector.FormatJSON(os.Stdout, metrics, thresholdResults)
	} else {
		collector.FormatText(os.Stdout, metrics, thresholdResults)
	}

	if thresholdResults != nil && !thresholdResults.Passed {
		if *output == "text" {
			fmt.Fprintln(os.Stderr, "\nThreshold check failed!")
		}
		os.Exit(ExitThresholdFailed)
	}

	os.Exit(ExitSuccess)
}

// runPhases normalizes the configuration into a phase list: either the
// configured profile or a single phase covering the whole run.
func runPhases(cfg *config.Config) []config.Phase {
	if cfg.Profile != nil && len(cfg.Profile.Phases) > 0 {
		return cfg.Profile.Phases
	}
	return []config.Phase{{Name: "run", Duration: cfg.Duration, Rate: cfg.Rate}}
}

func totalDuration(phases []config.Phase) time.Duration {
	var total time.Duration
	for _, ph := range phases {
		total += ph.Duration
	}
	return total
}

// aggregateRate returns the duration-weighted target rate across all
// streams, for threshold comparison against the observed aggregate rate.
func aggregateRate(phases []config.Phase, streams int) float64 {
	total := totalDuration(phases)
	if total <= 0 {
		return 0
	}
	var weighted float64
	for _, ph := range phases {
		weighted += ph.Rate * ph.Duration.Seconds()
	}
	return weighted / total.Seconds() * float64(streams)
}

// runStream executes all phases on one stream. Each phase gets a fresh
// generator so no sampler state carries across rate changes, and each stream
// constructs its own generators so nothing is shared between goroutines.
func runStream(ctx context.Context, streamID int, model string, phases []config.Phase,
	httpAction *action.HTTP, rep core.Reporter, tracer *trace.Logger) {

	var last time.Time
	handle := func(ts time.Time) {
		var gap time.Duration
		if !last.IsZero() {
			gap = ts.Sub(last)
		}
		last = ts

		tracer.LogEvent(streamID, ts, gap)

		if httpAction == nil {
			rep.Report(core.Event{
				StreamID:  streamID,
				Timestamp: ts,
				Gap:       gap,
				Success:   true,
			})
			return
		}

		ev := httpAction.Do(streamID, ts)
		ev.Gap = gap
		if !ev.Success {
			tracer.LogError(streamID, ev.Error, ev.Duration)
		}
		rep.Report(ev)
	}

	for _, ph := range phases {
		if ctx.Err() != nil {
			return
		}
		switch model {
		case config.ModelUniform:
			if err := pacer.NewUniform(ph.Rate).Run(ctx, ph.Duration, handle); err != nil {
				return
			}
		default:
			poisson.NewScheduler(ph.Rate).Run(ph.Duration, handle)
		}
	}
}
