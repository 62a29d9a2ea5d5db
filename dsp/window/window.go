// Package window generates the cosine-sum analysis windows used ahead of an
// FFT and applies them to sample frames.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
)

// Type selects a window shape.
type Type int

const (
	// TypeRectangular leaves samples unweighted.
	TypeRectangular Type = iota
	// TypeHann is the raised cosine, zero at both ends.
	TypeHann
	// TypeHamming is the raised cosine lifted to 0.08 at the ends.
	TypeHamming
	// TypeBlackman is the classic three-term cosine sum.
	TypeBlackman

	typeCount // sentinel for validation
)

var typeNames = [typeCount]string{"Rectangular", "Hann", "Hamming", "Blackman"}

// cosine-sum terms a0 - a1*cos(2πx) + a2*cos(4πx)
var typeTerms = [typeCount][3]float64{
	{1, 0, 0},
	{0.5, 0.5, 0},
	{0.54, 0.46, 0},
	{0.42, 0.5, 0.08},
}

// String returns the name of the window type.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form (FFT framing) instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. It returns nil
// for a non-positive length or an unknown type.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 || !t.Valid() {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	span := float64(length - 1)
	if cfg.periodic {
		span = float64(length)
	}

	terms := typeTerms[t]
	out := make([]float64, length)

	for i := range out {
		if span == 0 {
			out[i] = 1
			continue
		}

		x := 2 * math.Pi * float64(i) / span
		out[i] = terms[0] - terms[1]*math.Cos(x) + terms[2]*math.Cos(2*x)
	}

	return out
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// EquivalentNoiseBandwidth returns the ENBW of a window in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	var sumSquares float64
	for _, c := range coeffs {
		sumSquares += c * c
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}
