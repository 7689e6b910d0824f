// Package config handles YAML configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"pacesmith/internal/collector"
	"pacesmith/internal/poisson"

	"gopkg.in/yaml.v3"
)

// Arrival models.
const (
	ModelPoisson = "poisson"
	ModelUniform = "uniform"
)

// Config is the root configuration structure.
type Config struct {
	Rate       float64               `yaml:"rate"`     // events per second, per stream
	Duration   time.Duration         `yaml:"duration"` // total run duration
	Model      string                `yaml:"model"`    // poisson (default) or uniform
	Streams    int                   `yaml:"streams"`  // independent generator instances
	Target     *TargetConfig         `yaml:"target,omitempty"`
	Profile    *Profile              `yaml:"profile,omitempty"`
	Thresholds *collector.Thresholds `yaml:"thresholds,omitempty"`
}

// TargetConfig defines an optional HTTP request to issue on each event.
type TargetConfig struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
	Timeout time.Duration     `yaml:"timeout"`
}

// Profile defines a sequence of phases, each with its own rate. A fresh
// generator is created per phase, so rate changes take effect at phase
// boundaries.
type Profile struct {
	Phases []Phase `yaml:"phases"`
}

// Phase is one segment of a phased run.
type Phase struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Rate     float64       `yaml:"rate"`
}

// TotalDuration returns the sum of all phase durations.
func (p *Profile) TotalDuration() time.Duration {
	var total time.Duration
	for _, ph := range p.Phases {
		total += ph.Duration
	}
	return total
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for errors a run cannot proceed with.
// It guards the CLI path so misconfiguration surfaces as an error message
// rather than the scheduler's construction panic.
func (c *Config) Validate() error {
	switch c.Model {
	case "", ModelPoisson, ModelUniform:
	default:
		return fmt.Errorf("model must be %q or %q, got %q", ModelPoisson, ModelUniform, c.Model)
	}

	if c.Streams < 0 {
		return fmt.Errorf("streams must be >= 0, got %d", c.Streams)
	}

	if c.Profile != nil && len(c.Profile.Phases) > 0 {
		for i, ph := range c.Profile.Phases {
			if err := validateRate(ph.Rate); err != nil {
				return fmt.Errorf("phase %d (%s): %w", i, ph.Name, err)
			}
			if ph.Duration <= 0 {
				return fmt.Errorf("phase %d (%s): duration must be positive", i, ph.Name)
			}
		}
		return nil
	}

	if err := validateRate(c.Rate); err != nil {
		return err
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", c.Duration)
	}
	return nil
}

func validateRate(rate float64) error {
	if !(rate > 0) { // negated so NaN is rejected too
		return fmt.Errorf("rate must be positive, got %g", rate)
	}
	if rate > poisson.MaxRate {
		return fmt.Errorf("rate %g exceeds the 1e9 events/s limit", rate)
	}
	return nil
}

// EffectiveModel returns the arrival model, defaulting to Poisson.
func (c *Config) EffectiveModel() string {
	if c.Model == "" {
		return ModelPoisson
	}
	return c.Model
}

// EffectiveStreams returns the stream count, defaulting to one.
func (c *Config) EffectiveStreams() int {
	if c.Streams <= 0 {
		return 1
	}
	return c.Streams
}
