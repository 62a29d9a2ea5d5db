package dither

import "fmt"

const (
	defaultBitDepth = 16
	defaultLimit    = true
	defaultRounding = RoundNearest
	minBitDepth     = 1
	maxBitDepth     = 32
)

type config struct {
	bitDepth int
	limit    bool
	rounding Rounding
}

func defaultConfig() config {
	return config{
		bitDepth: defaultBitDepth,
		limit:    defaultLimit,
		rounding: defaultRounding,
	}
}

// Option configures a [Requantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (1–32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		err := checkBitDepth(bits)
		if err != nil {
			return err
		}

		cfg.bitDepth = bits

		return nil
	}
}

// WithLimit enables or disables clipping to the bit-depth range (default true).
func WithLimit(enabled bool) Option {
	return func(cfg *config) error {
		cfg.limit = enabled
		return nil
	}
}

// WithRounding sets the rounding mode (default [RoundNearest]).
func WithRounding(r Rounding) Option {
	return func(cfg *config) error {
		if !r.Valid() {
			return fmt.Errorf("dither: invalid rounding mode: %d", r)
		}

		cfg.rounding = r

		return nil
	}
}

func checkBitDepth(bits int) error {
	if bits < minBitDepth || bits > maxBitDepth {
		return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
	}

	return nil
}
