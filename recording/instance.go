package recording

import "fmt"

// Instance is a recording in either continuous or segmented form. The
// preprocessing entry points accept an Instance and resolve its concrete
// shape exactly once, through Samples.
type Instance interface {
	Info() Info
}

// Range selects a half-open window [Start, Stop) on the sample axis of a
// continuous recording. The zero value selects all samples; a zero Stop
// means "through the last sample".
type Range struct {
	Start int
	Stop  int
}

func (r Range) apply(block [][]float64) ([][]float64, error) {
	if len(block) == 0 {
		return block, nil
	}
	n := len(block[0])
	start, stop := r.Start, r.Stop
	if stop == 0 {
		stop = n
	}
	if start < 0 || stop < start || stop > n {
		return nil, fmt.Errorf("%w: [%d, %d) of %d samples", ErrRange, start, stop, n)
	}
	if start == 0 && stop == n {
		return block, nil
	}
	out := make([][]float64, len(block))
	for ch, row := range block {
		out[ch] = row[start:stop]
	}
	return out, nil
}

// RejectionPolicy masks unwanted stretches of a continuous recording before
// analysis. Filter receives the windowed (channels, samples) block and
// returns the block to analyze; implementations must not mutate the input
// and must return equally long rows.
type RejectionPolicy interface {
	Filter(block [][]float64) [][]float64
}

// Samples resolves an instance into per-segment blocks: a single block for
// a continuous recording, one block per epoch for a segmented one. The
// window and policy restrict continuous input only; segmented input is
// returned whole. Instances of any other type yield ErrUnknownInstance.
func Samples(inst Instance, window Range, policy RejectionPolicy) ([][][]float64, error) {
	switch v := inst.(type) {
	case *Raw:
		block, err := window.apply(v.data)
		if err != nil {
			return nil, err
		}
		if policy != nil {
			block = policy.Filter(block)
		}
		return [][][]float64{block}, nil
	case *Epochs:
		return v.data, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInstance, inst)
	}
}
