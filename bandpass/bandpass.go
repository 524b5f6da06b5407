// Package bandpass implements linear-phase FIR band-pass filtering for
// multichannel recordings. Filters are designed with the windowed-sinc
// method and normalized to unit gain at the geometric center of the band;
// Apply compensates the group delay so output rows stay aligned with the
// input.
package bandpass

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-eeg/internal/fastconv"
	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by filter construction.
var (
	ErrBand       = errors.New("bandpass: invalid band edges")
	ErrSampleRate = errors.New("bandpass: invalid sample rate")
	ErrTaps       = errors.New("bandpass: invalid tap count")
)

// Window selects the taper applied to the sinc design.
type Window int

const (
	// Hamming trades stopband depth for a narrower transition band.
	Hamming Window = iota
	// Blackman deepens the stopband at the cost of a wider transition.
	Blackman
)

// Valid reports whether w names a known taper.
func (w Window) Valid() bool {
	return w == Hamming || w == Blackman
}

// Cosine-series taper coefficients evaluated over n/(N-1).
var (
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Kernels up to this length run in the time domain; longer ones go
// through the overlap-add engine.
const directTapLimit = 64

// Filter is a designed FIR band-pass filter. Methods that filter data are
// not safe for concurrent use on the same Filter.
type Filter struct {
	low    float64
	high   float64
	rate   float64
	taps   []float64
	engine *fastconv.Engine
}

// New designs a band-pass filter passing [low, high] Hz at the given
// sample rate. The band must satisfy 0 < low < high < rate/2.
func New(low, high, rate float64, opts ...Option) (*Filter, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v Hz", ErrSampleRate, rate)
	}
	if math.IsNaN(low) || math.IsNaN(high) || low <= 0 || high <= low || high >= rate/2 {
		return nil, fmt.Errorf("%w: [%v, %v] Hz at %v Hz sampling", ErrBand, low, high, rate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		low:  low,
		high: high,
		rate: rate,
		taps: design(low, high, rate, cfg.taps, cfg.window),
	}
	if cfg.taps > directTapLimit {
		engine, err := fastconv.New(f.taps, 0)
		if err != nil {
			return nil, err
		}
		f.engine = engine
	}
	return f, nil
}

// Band returns the low and high cutoff frequencies in Hz.
func (f *Filter) Band() (low, high float64) {
	return f.low, f.high
}

// Taps returns a copy of the filter coefficients.
func (f *Filter) Taps() []float64 {
	taps := make([]float64, len(f.taps))
	copy(taps, f.taps)
	return taps
}

// Response computes the complex frequency response H(e^{-jw}) at the
// given frequency in Hz.
func (f *Filter) Response(freqHz float64) complex128 {
	return response(f.taps, freqHz, f.rate)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz)))
}

// Apply filters each channel row and trims the group delay, so every
// output row keeps its input length and alignment. Zero-length rows pass
// through untouched; the input block is never modified.
func (f *Filter) Apply(block [][]float64) ([][]float64, error) {
	out := make([][]float64, len(block))
	for ch, row := range block {
		filtered, err := f.applyRow(row)
		if err != nil {
			return nil, err
		}
		out[ch] = filtered
	}
	return out, nil
}

func (f *Filter) applyRow(row []float64) ([]float64, error) {
	if len(row) == 0 {
		return []float64{}, nil
	}
	var full []float64
	var err error
	if f.engine != nil {
		full, err = f.engine.Convolve(row)
	} else {
		full, err = fastconv.Direct(row, f.taps)
	}
	if err != nil {
		return nil, err
	}
	delay := len(f.taps) / 2
	return full[delay : delay+len(row)], nil
}

// ApplyInstance filters a recording and returns the same container kind:
// continuous input yields a filtered *recording.Raw, segmented input a
// filtered *recording.Epochs with every epoch processed on its own.
func (f *Filter) ApplyInstance(inst recording.Instance) (recording.Instance, error) {
	switch v := inst.(type) {
	case *recording.Raw:
		filtered, err := f.Apply(v.Data())
		if err != nil {
			return nil, err
		}
		return recording.NewRaw(v.Info(), filtered)
	case *recording.Epochs:
		out := make([][][]float64, v.EpochCount())
		for e := range out {
			filtered, err := f.Apply(v.Epoch(e))
			if err != nil {
				return nil, err
			}
			out[e] = filtered
		}
		return recording.NewEpochs(v.Info(), out)
	default:
		return nil, fmt.Errorf("%w: %T", recording.ErrUnknownInstance, inst)
	}
}

// design builds the windowed-sinc band-pass kernel: the difference of two
// low-pass sinc kernels, tapered and normalized to unit gain at the
// geometric band center sqrt(low*high).
func design(low, high, rate float64, taps int, win Window) []float64 {
	wl := 2 * math.Pi * low / rate
	wh := 2 * math.Pi * high / rate
	mid := taps / 2

	h := make([]float64, taps)
	for n := range h {
		if n == mid {
			h[n] = (wh - wl) / math.Pi
		} else {
			d := float64(n - mid)
			h[n] = (math.Sin(wh*d) - math.Sin(wl*d)) / (math.Pi * d)
		}
	}
	vecmath.MulBlockInPlace(h, taper(taps, win))

	gain := cmplx.Abs(response(h, math.Sqrt(low*high), rate))
	if gain > 0 {
		for n := range h {
			h[n] /= gain
		}
	}
	return h
}

// taper returns symmetric cosine-series window coefficients of the given
// length.
func taper(taps int, win Window) []float64 {
	coeffs := hammingCoeffs
	if win == Blackman {
		coeffs = blackmanCoeffs
	}
	out := make([]float64, taps)
	for n := range out {
		phase := 2 * math.Pi * float64(n) / float64(taps-1)
		sum := 0.0
		for k, c := range coeffs {
			sum += c * math.Cos(float64(k)*phase)
		}
		out[n] = sum
	}
	return out
}

func response(taps []float64, freqHz, rate float64) complex128 {
	w := 2 * math.Pi * freqHz / rate
	var h complex128
	for k, c := range taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}
