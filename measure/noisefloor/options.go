package noisefloor

import (
	"fmt"

	"github.com/cwbudde/algo-dither/dsp/window"
)

const (
	defaultFFTSize = 1024
	minFFTSize     = 16
	maxFFTSize     = 1 << 20
)

type config struct {
	fftSize int
	window  window.Type
}

func defaultConfig() config {
	return config{fftSize: defaultFFTSize, window: window.TypeHann}
}

// Option configures [Analyze].
type Option func(*config) error

// WithFFTSize sets the frame length of the spectral estimate. It must be a
// power of two in [16, 2^20].
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < minFFTSize || n > maxFFTSize || n&(n-1) != 0 {
			return fmt.Errorf("noisefloor: fft size must be a power of two in [%d, %d]: %d",
				minFFTSize, maxFFTSize, n)
		}

		cfg.fftSize = n

		return nil
	}
}

// WithWindow sets the analysis window of the spectral estimate (default
// [window.TypeHann]).
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("noisefloor: invalid window type: %d", t)
		}

		cfg.window = t

		return nil
	}
}
