package gfp

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
)

// ErrPeakDistance indicates a minimum peak distance below one sample.
var ErrPeakDistance = errors.New("gfp: minimum peak distance must be >= 1")

// Dispersion returns the global field power of a block: for every sample,
// the population standard deviation of the instantaneous values across
// channels.
func Dispersion(block [][]float64) []float64 {
	if len(block) == 0 {
		return nil
	}
	out := make([]float64, len(block[0]))
	channels := float64(len(block))
	for j := range out {
		// Welford accumulation across the channel axis.
		var mean, m2 float64
		for i, row := range block {
			delta := row[j] - mean
			mean += delta / float64(i+1)
			m2 += delta * (row[j] - mean)
		}
		out[j] = math.Sqrt(m2 / channels)
	}
	return out
}

// Peaks returns the sample indices of the global field power peaks of one
// (channels, samples) block, thinned so neighbors are at least
// minPeakDistance samples apart.
func Peaks(block [][]float64, minPeakDistance int) ([]int, error) {
	if minPeakDistance < 1 {
		return nil, fmt.Errorf("%w: %d", ErrPeakDistance, minPeakDistance)
	}
	return FindPeaks(Dispersion(block), minPeakDistance)
}

// ExtractPeaks reduces a recording to the samples at its global field power
// peaks. Continuous input is windowed and masked first; segmented input is
// processed per epoch and the kept columns concatenated in epoch order. The
// result carries the input's channel layout with the sampling rate set to
// recording.IrregularRate.
func ExtractPeaks(inst recording.Instance, opts ...Option) (recording.Container, error) {
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

	total := 0
	picked := 0
	extracted := make([][][]float64, 0, len(blocks))
	for _, block := range blocks {
		total += sampleCount(block)
		indices, err := Peaks(block, cfg.minPeakDistance)
		if err != nil {
			return nil, err
		}
		picked += len(indices)
		extracted = append(extracted, recording.SelectColumns(block, indices))
	}

	data := extracted[0]
	if len(extracted) > 1 {
		data = recording.ConcatColumns(extracted)
	}

	info := inst.Info().WithSampleRate(recording.IrregularRate)
	out, err := cfg.builder.Build(info, data)
	if err != nil {
		return nil, err
	}

	percent := 0.0
	if total > 0 {
		percent = 100 * float64(picked) / float64(total)
	}
	cfg.reporter.Info("global field power peaks extracted",
		"peaks", picked,
		"samples", total,
		"percent", percent,
	)
	return out, nil
}

func sampleCount(block [][]float64) int {
	if len(block) == 0 {
		return 0
	}
	return len(block[0])
}
