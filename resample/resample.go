package resample

import (
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
)

// DrawDomain selects the index pool for draws with replacement.
type DrawDomain int

const (
	// DomainEpochLength draws every index from the first EpochLength
	// samples of the recording.
	DomainEpochLength DrawDomain = iota
	// DomainFullRange draws every index from the whole recording.
	DomainFullRange
)

// Valid reports whether d names a known draw domain.
func (d DrawDomain) Valid() bool {
	return d == DomainEpochLength || d == DomainFullRange
}

// Draw splits a recording into randomly drawn fixed-length epochs.
//
// Two of the three sizing options (WithEpochCount, WithEpochLength,
// WithCoverage) must be given; the third is derived from the recording
// length. Segmented input is flattened in epoch order first. Every
// validation failure surfaces before a single index is drawn, so a
// generator supplied through WithRNG is left untouched on error.
func Draw(inst recording.Instance, opts ...Option) ([]recording.Container, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.builder == nil {
		cfg.builder = recording.RawBuilder{}
	}
	if cfg.reporter == nil {
		cfg.reporter = report.Discard{}
	}

	blocks, err := recording.Samples(inst, cfg.window, cfg.policy)
	if err != nil {
		return nil, err
	}
	stream := blocks[0]
	if len(blocks) > 1 {
		stream = recording.ConcatColumns(blocks)
	}
	total := 0
	if len(stream) > 0 {
		total = len(stream[0])
	}

	plan, err := PlanFor(total, cfg.epochCount, cfg.epochLength, cfg.coverage)
	if err != nil {
		return nil, err
	}
	if !cfg.replace && plan.Samples() > total {
		return nil, fmt.Errorf("%w: cannot draw %d epochs of %d samples (%d total) from %d samples without replacement",
			ErrInsufficientSamples, plan.EpochCount, plan.EpochLength, plan.Samples(), total)
	}
	if cfg.replace && cfg.domain == DomainEpochLength && plan.EpochCount > 0 && plan.EpochLength > total {
		return nil, fmt.Errorf("%w: draw pool of %d samples exceeds the %d available",
			ErrInsufficientSamples, plan.EpochLength, total)
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	cfg.reporter.Info("resampling recording into epochs",
		"epochs", plan.EpochCount,
		"epoch_samples", plan.EpochLength,
		"percent", 100*plan.Coverage,
	)

	indices := drawIndices(rng, plan, total, cfg.replace, cfg.domain)

	info := inst.Info()
	out := make([]recording.Container, len(indices))
	for e, idx := range indices {
		c, err := cfg.builder.Build(info, recording.SelectColumns(stream, idx))
		if err != nil {
			return nil, err
		}
		out[e] = c
	}
	return out, nil
}

// drawIndices produces one index row per epoch. With replacement the rows
// are independent uniform draws over the configured domain; without
// replacement they partition a single shuffled pass over all samples.
func drawIndices(rng *rand.Rand, plan Plan, total int, replace bool, domain DrawDomain) [][]int {
	out := make([][]int, plan.EpochCount)
	if replace {
		pool := plan.EpochLength
		if domain == DomainFullRange {
			pool = total
		}
		for e := range out {
			row := make([]int, plan.EpochLength)
			for i := range row {
				row[i] = rng.IntN(pool)
			}
			out[e] = row
		}
		return out
	}

	perm := rng.Perm(total)
	for e := range out {
		out[e] = perm[e*plan.EpochLength : (e+1)*plan.EpochLength]
	}
	return out
}
