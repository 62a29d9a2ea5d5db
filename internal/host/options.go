package host

import (
	"fmt"
	"math"
)

// Mode selects how a Renderer writes unit output.
type Mode int

const (
	// ModeOverwrite replaces the destination with the unit output.
	ModeOverwrite Mode = iota
	// ModeAdding adds the gain-scaled unit output to the destination.
	ModeAdding

	modeCount // sentinel for validation
)

var modeNames = [modeCount]string{"overwrite", "adding"}

// String returns the name of the mode.
func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}

	return fmt.Sprintf("Mode(%d)", m)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}

	return 0, fmt.Errorf("host: unknown mode %q", name)
}

const (
	defaultBlockSize = 1024
	defaultMode      = ModeOverwrite
	defaultGain      = 1.0
)

type config struct {
	blockSize int
	mode      Mode
	gain      float64
	controls  map[string]float64
}

func defaultConfig() config {
	return config{
		blockSize: defaultBlockSize,
		mode:      defaultMode,
		gain:      defaultGain,
		controls:  make(map[string]float64),
	}
}

// Option configures a [Renderer].
type Option func(*config) error

// WithBlockSize sets the maximum number of frames per processing call
// (default 1024).
func WithBlockSize(frames int) Option {
	return func(cfg *config) error {
		if frames <= 0 {
			return fmt.Errorf("host: block size must be > 0: %d", frames)
		}

		cfg.blockSize = frames

		return nil
	}
}

// WithMode selects overwrite or adding processing (default [ModeOverwrite]).
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("host: invalid mode: %d", m)
		}

		cfg.mode = m

		return nil
	}
}

// WithGain sets the run-adding gain (default 1). It only matters in
// [ModeAdding].
func WithGain(gain float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("host: gain must be finite: %f", gain)
		}

		cfg.gain = gain

		return nil
	}
}

// WithControl sets the value of the named control input port. Values are
// clamped to the port bounds before binding. Ports without an explicit value
// use their hinted default, or 0.
func WithControl(name string, value float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(value) {
			return fmt.Errorf("host: control %q must not be NaN", name)
		}

		cfg.controls[name] = value

		return nil
	}
}
