// Package gfp extracts global field power peaks from multichannel
// recordings.
//
// The global field power (GFP) of a recording is the standard deviation
// across channels at every sample; its local maxima mark the moments of
// highest field strength, which carry most of the topographic information
// used by microstate clustering. ExtractPeaks reduces a recording to the
// samples at those maxima:
//
//	peaks, err := gfp.ExtractPeaks(raw, gfp.WithMinPeakDistance(4))
//
// Continuous recordings are processed as one stream; segmented recordings
// are processed epoch by epoch, so maxima are never compared across epoch
// boundaries, and the extracted columns are concatenated in epoch order.
// The resulting container carries the input's channel layout with the
// sampling rate set to recording.IrregularRate, because the kept samples
// are no longer evenly spaced in time.
//
// The lower-level building blocks are exported as well: Dispersion computes
// the GFP signal, FindPeaks locates distance-constrained local maxima of
// any signal, and Peaks combines the two for one data block.
package gfp
