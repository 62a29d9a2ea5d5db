package dither

import "math"

// Requantizer maps normalized samples in [-1, +1) to signed integers of a
// target bit depth. It adds no noise of its own; feed it the output of a
// Mixer configured with a matching precision.
type Requantizer struct {
	bitDepth int
	limit    bool
	rounding Rounding

	// derived from bitDepth
	fullScale float64
	limitLo   int
	limitHi   int
}

// NewRequantizer creates a Requantizer. The default configuration is 16-bit,
// round to nearest, clipping enabled.
func NewRequantizer(opts ...Option) (*Requantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	rq := &Requantizer{
		bitDepth: cfg.bitDepth,
		limit:    cfg.limit,
		rounding: cfg.rounding,
	}
	rq.updateDerived()

	return rq, nil
}

func (r *Requantizer) updateDerived() {
	r.fullScale = math.Exp2(float64(r.bitDepth - 1))
	r.limitHi = int(r.fullScale) - 1
	r.limitLo = -int(r.fullScale)
}

// Quantize scales x by 2^(bitDepth-1) and rounds it to an integer.
func (r *Requantizer) Quantize(x float64) int {
	scaled := x * r.fullScale

	var result int
	if r.rounding == RoundFloor {
		result = int(math.Floor(scaled))
	} else {
		result = int(math.Round(scaled))
	}

	if r.limit {
		result = max(r.limitLo, min(r.limitHi, result))
	}

	return result
}

// QuantizeBlock quantizes src into dst. dst must be at least as long as src.
func (r *Requantizer) QuantizeBlock(dst []int, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = r.Quantize(x)
	}
}

// Normalize maps an integer sample back to [-1, +1).
func (r *Requantizer) Normalize(v int) float64 {
	return float64(v) / r.fullScale
}

// BitDepth returns the target bit depth.
func (r *Requantizer) BitDepth() int { return r.bitDepth }

// Limit reports whether clipping is enabled.
func (r *Requantizer) Limit() bool { return r.limit }

// Rounding returns the rounding mode.
func (r *Requantizer) Rounding() Rounding { return r.rounding }

// FullScale returns 2^(bitDepth-1), the integer magnitude of a full-scale sample.
func (r *Requantizer) FullScale() float64 { return r.fullScale }

// Range returns the smallest and largest integer Quantize can produce when
// clipping is enabled.
func (r *Requantizer) Range() (lo, hi int) { return r.limitLo, r.limitHi }

// SetBitDepth changes the target bit depth (1–32).
func (r *Requantizer) SetBitDepth(bits int) error {
	err := checkBitDepth(bits)
	if err != nil {
		return err
	}

	r.bitDepth = bits
	r.updateDerived()

	return nil
}
