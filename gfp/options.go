package gfp

import (
	"fmt"

	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
)

const defaultMinPeakDistance = 2

type config struct {
	minPeakDistance int
	window          recording.Range
	policy          recording.RejectionPolicy
	builder         recording.Builder
	reporter        report.Reporter
}

func defaultConfig() config {
	return config{
		minPeakDistance: defaultMinPeakDistance,
		builder:         recording.RawBuilder{},
		reporter:        report.Discard{},
	}
}

// Option configures an extraction run.
type Option func(*config) error

// WithMinPeakDistance sets the minimum number of samples between kept peaks
// (default 2, must be >= 1).
func WithMinPeakDistance(distance int) Option {
	return func(cfg *config) error {
		if distance < 1 {
			return fmt.Errorf("%w: %d", ErrPeakDistance, distance)
		}
		cfg.minPeakDistance = distance
		return nil
	}
}

// WithRange restricts extraction to a sample window of a continuous
// recording. Segmented recordings ignore it.
func WithRange(window recording.Range) Option {
	return func(cfg *config) error {
		cfg.window = window
		return nil
	}
}

// WithRejectionPolicy masks stretches of a continuous recording before
// extraction. Segmented recordings ignore it.
func WithRejectionPolicy(policy recording.RejectionPolicy) Option {
	return func(cfg *config) error {
		cfg.policy = policy
		return nil
	}
}

// WithBuilder sets the container factory for the result (default
// recording.RawBuilder).
func WithBuilder(builder recording.Builder) Option {
	return func(cfg *config) error {
		cfg.builder = builder
		return nil
	}
}

// WithReporter sets the observer receiving the extraction summary (default
// report.Discard).
func WithReporter(reporter report.Reporter) Option {
	return func(cfg *config) error {
		cfg.reporter = reporter
		return nil
	}
}
