package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates uniform white noise on [-amplitude, amplitude)
// from a fixed seed. It is independent of the dither generator, so it can
// serve as a reference signal in tests of it.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Interleave merges equally long channels into one frame-interleaved slice.
func Interleave(chans ...[]float64) []float64 {
	if len(chans) == 0 {
		return nil
	}

	out := make([]float64, 0, len(chans)*len(chans[0]))
	for i := range chans[0] {
		for _, c := range chans {
			out = append(out, c[i])
		}
	}

	return out
}

// Deinterleave extracts channel ch of a frame-interleaved slice with
// channels channels.
func Deinterleave(src []float64, ch, channels int) []float64 {
	out := make([]float64, len(src)/channels)
	for i := range out {
		out[i] = src[i*channels+ch]
	}

	return out
}
