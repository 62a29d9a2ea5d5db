package dither

import "math"

const (
	// Stride is the number of generators in each NoiseSource bank. Noise is
	// always drawn in whole batches of Stride pairs.
	Stride = 16

	// MinPrecision is the smallest supported precision control value in bits.
	MinPrecision = 1
	// MaxPrecision is the largest supported precision control value in bits.
	MaxPrecision = 24
)

// Scale returns the peak excursion 2^(1-precision) of the dither noise for a
// target word length of precision bits.
//
// Precision is not clamped; hosts are expected to keep it in
// [MinPrecision, MaxPrecision].
func Scale(precision float64) float64 {
	return math.Exp2(1 - precision)
}

// tpdf forms one dithered sample. The conversion keeps scale*noise rounded
// on its own so that Run and RunAdding agree bit for bit.
func tpdf(in, scale, a, b float64) float64 {
	return in + float64(scale*(a+b-1))
}
