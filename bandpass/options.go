package bandpass

import "fmt"

const defaultTaps = 201

type config struct {
	taps   int
	window Window
}

func defaultConfig() config {
	return config{taps: defaultTaps, window: Hamming}
}

// Option configures the filter design.
type Option func(*config) error

// WithTaps sets the kernel length (odd, >= 3). More taps sharpen the band
// edges at the cost of a longer startup transient.
func WithTaps(n int) Option {
	return func(cfg *config) error {
		if n < 3 || n%2 == 0 {
			return fmt.Errorf("%w: %d (need an odd count >= 3)", ErrTaps, n)
		}
		cfg.taps = n
		return nil
	}
}

// WithWindow selects the taper applied to the sinc design (default Hamming).
func WithWindow(w Window) Option {
	return func(cfg *config) error {
		if !w.Valid() {
			return fmt.Errorf("bandpass: unknown window: %d", w)
		}
		cfg.window = w
		return nil
	}
}
