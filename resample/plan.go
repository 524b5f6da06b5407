package resample

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by plan resolution and drawing.
var (
	ErrUnderspecified      = errors.New("resample: need two of epoch count, epoch length, and coverage")
	ErrEpochCount          = errors.New("resample: invalid epoch count")
	ErrEpochLength         = errors.New("resample: invalid epoch length")
	ErrCoverage            = errors.New("resample: invalid coverage")
	ErrInsufficientSamples = errors.New("resample: not enough samples")
)

// Plan is the resolved sizing of one resampling run.
type Plan struct {
	EpochCount  int
	EpochLength int
	Coverage    float64
}

// PlanFor resolves the sizing triple against a recording of totalSamples
// samples. A zero epochCount, epochLength, or coverage means "derive this
// one"; at most one of the three may be zero, and derived counts and
// lengths round down. When all three are supplied they are returned
// unchanged.
func PlanFor(totalSamples, epochCount, epochLength int, coverage float64) (Plan, error) {
	if totalSamples <= 0 {
		return Plan{}, fmt.Errorf("%w: recording holds %d samples", ErrInsufficientSamples, totalSamples)
	}

	missing := 0
	if epochCount == 0 {
		missing++
	}
	if epochLength == 0 {
		missing++
	}
	if coverage == 0 {
		missing++
	}
	if missing > 1 {
		return Plan{}, ErrUnderspecified
	}

	if epochCount < 0 {
		return Plan{}, fmt.Errorf("%w: %d", ErrEpochCount, epochCount)
	}
	if epochLength < 0 {
		return Plan{}, fmt.Errorf("%w: %d", ErrEpochLength, epochLength)
	}
	if coverage < 0 || math.IsNaN(coverage) || math.IsInf(coverage, 0) {
		return Plan{}, fmt.Errorf("%w: %v", ErrCoverage, coverage)
	}

	total := float64(totalSamples)
	switch {
	case coverage == 0:
		coverage = float64(epochCount) * float64(epochLength) / total
	case epochCount == 0:
		epochCount = int(total * coverage / float64(epochLength))
	case epochLength == 0:
		epochLength = int(total * coverage / float64(epochCount))
	}

	return Plan{EpochCount: epochCount, EpochLength: epochLength, Coverage: coverage}, nil
}

// Samples returns the total number of samples the plan draws.
func (p Plan) Samples() int {
	return p.EpochCount * p.EpochLength
}
