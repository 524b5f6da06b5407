package resample

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
)

type config struct {
	epochCount  int
	epochLength int
	coverage    float64
	replace     bool
	domain      DrawDomain
	window      recording.Range
	policy      recording.RejectionPolicy
	rng         *rand.Rand
	builder     recording.Builder
	reporter    report.Reporter
}

func defaultConfig() config {
	return config{
		replace:  true,
		builder:  recording.RawBuilder{},
		reporter: report.Discard{},
	}
}

// Option configures a resampling run.
type Option func(*config) error

// WithEpochCount sets how many epochs to draw (must be >= 1). Omit it to
// derive the count from epoch length and coverage.
func WithEpochCount(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrEpochCount, n)
		}
		cfg.epochCount = n
		return nil
	}
}

// WithEpochLength sets how many samples each epoch holds (must be >= 1).
// Omit it to derive the length from epoch count and coverage.
func WithEpochLength(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrEpochLength, n)
		}
		cfg.epochLength = n
		return nil
	}
}

// WithCoverage sets the fraction of the recording the drawn samples amount
// to (must be > 0 and finite; values above 1 require replacement). Omit it
// to derive the coverage from epoch count and length.
func WithCoverage(c float64) Option {
	return func(cfg *config) error {
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: %v", ErrCoverage, c)
		}
		cfg.coverage = c
		return nil
	}
}

// WithoutReplacement makes every drawn sample index unique across the whole
// run. The requested sample budget must then fit the recording.
func WithoutReplacement() Option {
	return func(cfg *config) error {
		cfg.replace = false
		return nil
	}
}

// WithDrawDomain sets the index pool for draws with replacement (default
// DomainEpochLength). Draws without replacement always cover the whole
// recording.
func WithDrawDomain(d DrawDomain) Option {
	return func(cfg *config) error {
		if !d.Valid() {
			return fmt.Errorf("resample: invalid draw domain: %d", d)
		}
		cfg.domain = d
		return nil
	}
}

// WithRange restricts the draw to a sample window of a continuous
// recording. Segmented recordings ignore it.
func WithRange(window recording.Range) Option {
	return func(cfg *config) error {
		cfg.window = window
		return nil
	}
}

// WithRejectionPolicy masks stretches of a continuous recording before
// drawing. Segmented recordings ignore it.
func WithRejectionPolicy(policy recording.RejectionPolicy) Option {
	return func(cfg *config) error {
		cfg.policy = policy
		return nil
	}
}

// WithRNG sets the random source for index draws, for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

// WithSeed seeds a dedicated random source for index draws. Shorthand for
// WithRNG with a fresh PCG generator.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.rng = rand.New(rand.NewPCG(seed, 0))
		return nil
	}
}

// WithBuilder sets the container factory for drawn epochs (default
// recording.RawBuilder).
func WithBuilder(builder recording.Builder) Option {
	return func(cfg *config) error {
		cfg.builder = builder
		return nil
	}
}

// WithReporter sets the observer receiving the draw summary (default
// report.Discard).
func WithReporter(reporter report.Reporter) Option {
	return func(cfg *config) error {
		cfg.reporter = reporter
		return nil
	}
}
