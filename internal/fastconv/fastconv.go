// Package fastconv provides linear convolution for FIR filtering of long
// recordings. Short kernels run in the time domain with vectorized
// accumulation; longer kernels go through an FFT-based overlap-add engine
// that reuses its plan and scratch buffers across calls.
package fastconv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution entry points.
var (
	ErrEmptyInput  = errors.New("fastconv: empty input")
	ErrEmptyKernel = errors.New("fastconv: empty kernel")
)

// Direct performs time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a)
	m := len(b)
	dst := make([]float64, n+m-1)

	const simdThreshold = 4
	if m < simdThreshold {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				dst[i+j] += a[i] * b[j]
			}
		}
		return dst, nil
	}

	// Vectorized form: scale the kernel by each input sample and
	// accumulate the scaled copy into the output window.
	scaled := make([]float64, m)
	for i := 0; i < n; i++ {
		vecmath.ScaleBlock(scaled, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], scaled)
	}
	return dst, nil
}

// Engine convolves signals with a fixed kernel using the overlap-add
// method: the input is segmented into blocks, each block is convolved in
// the frequency domain, and the tails of adjacent block results overlap
// into each other.
type Engine struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan    *algofft.Plan[complex128]
	segment []complex128
	product []complex128
}

// New builds an overlap-add engine for the given kernel. blockSize
// controls input segmentation; zero selects a size based on the kernel
// length.
func New(kernel []float64, blockSize int) (*Engine, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	kernelLen := len(kernel)
	if blockSize <= 0 {
		blockSize = nextPowerOf2(kernelLen)
		if blockSize < 256 {
			blockSize = 256
		}
	}

	// Linear convolution of a block needs blockSize + kernelLen - 1
	// samples of room.
	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fastconv: failed to create FFT plan: %w", err)
	}

	e := &Engine{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		segment:   make([]complex128, fftSize),
		product:   make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(e.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("fastconv: failed to transform kernel: %w", err)
	}
	return e, nil
}

// KernelLen returns the kernel length the engine was built for.
func (e *Engine) KernelLen() int { return e.kernelLen }

// BlockSize returns the input segmentation size.
func (e *Engine) BlockSize() int { return e.blockSize }

// FFTSize returns the transform size used internally.
func (e *Engine) FFTSize() int { return e.fftSize }

// Convolve returns the full linear convolution of input with the engine's
// kernel, of length len(input) + KernelLen() - 1. The engine's scratch
// buffers are reused, so an Engine is not safe for concurrent use.
func (e *Engine) Convolve(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outputLen := len(input) + e.kernelLen - 1
	output := make([]float64, outputLen)

	numBlocks := (len(input) + e.blockSize - 1) / e.blockSize
	for block := 0; block < numBlocks; block++ {
		start := block * e.blockSize
		end := min(start+e.blockSize, len(input))
		blockLen := end - start

		for i := range e.segment {
			e.segment[i] = 0
		}
		for i := 0; i < blockLen; i++ {
			e.segment[i] = complex(input[start+i], 0)
		}

		if err := e.plan.Forward(e.segment, e.segment); err != nil {
			return nil, fmt.Errorf("fastconv: forward FFT failed: %w", err)
		}
		for i := range e.product {
			e.product[i] = e.segment[i] * e.kernelFFT[i]
		}
		if err := e.plan.Inverse(e.product, e.product); err != nil {
			return nil, fmt.Errorf("fastconv: inverse FFT failed: %w", err)
		}

		// Each block contributes blockLen + kernelLen - 1 samples; the
		// tail past blockSize lands under the next block's head.
		resultLen := blockLen + e.kernelLen - 1
		for i := 0; i < resultLen && start+i < outputLen; i++ {
			output[start+i] += real(e.product[i])
		}
	}
	return output, nil
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
