// Package resample draws fixed-length random epochs from multichannel
// recordings.
//
// A draw is sized by three coupled parameters: the number of epochs, the
// samples per epoch, and the coverage (the fraction of the source the drawn
// samples jointly amount to). Callers supply two of them and the third is
// derived from the recording length:
//
//	epochs, err := resample.Draw(raw,
//		resample.WithEpochCount(10),
//		resample.WithCoverage(0.5),
//	)
//
// Draws use replacement by default, so coverage may exceed 1. Without
// replacement every sample index is used at most once across the whole run,
// which requires the requested budget to fit the recording. Segmented input
// is flattened in epoch order before drawing; each drawn epoch becomes its
// own container carrying the source info unchanged.
//
// All randomness flows through an explicit generator injected with WithRNG
// or WithSeed, never through package state, so runs are reproducible.
package resample
