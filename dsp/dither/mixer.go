package dither

// Mixer adds TPDF dither to blocks of samples.
//
// A Mixer owns its NoiseSource exclusively and is not safe for concurrent
// use. Run and RunAdding consume noise in whole batches of Stride pairs: a
// block whose length is not a multiple of Stride draws one extra batch and
// discards the pairs past the end of the block, so the output depends on how
// a stream is split into blocks.
//
// A block whose length is an exact multiple of Stride draws no extra batch.
// Generators that always draw one batch past the loop produce different
// noise for such block sizes (64, 256, 1024, ...), so renders made that way
// are not reproduced bit for bit.
type Mixer struct {
	noise NoiseSource
	gain  float64
}

// NewMixer returns a Mixer with its noise source at the fixed seed and a gain
// of zero.
func NewMixer() *Mixer {
	mix := &Mixer{}
	mix.Reset()

	return mix
}

// Reset reseeds the noise source. Gain is left unchanged.
func (m *Mixer) Reset() {
	m.noise.Reset()
}

// SetGain sets the gain used by RunAdding. It has no effect on Run.
func (m *Mixer) SetGain(gain float64) {
	m.gain = gain
}

// Gain returns the gain used by RunAdding.
func (m *Mixer) Gain() float64 { return m.gain }

// NoiseState returns the raw generator states of the owned noise source.
func (m *Mixer) NoiseState() (a, b [Stride]uint32) {
	return m.noise.State()
}

// Run writes dst[i] = src[i] + Scale(precision)*noise for every i in dst.
// src must be at least as long as dst. Zero-alloc.
func (m *Mixer) Run(dst, src []float64, precision float64) {
	var ra, rb [Stride]float64

	scale := Scale(precision)
	n := len(dst)
	src = src[:n]

	i := 0
	for ; i+Stride <= n; i += Stride {
		m.noise.Next(&ra, &rb)

		out := dst[i : i+Stride]
		in := src[i : i+Stride]

		for j := range out {
			out[j] = tpdf(in[j], scale, ra[j], rb[j])
		}
	}

	if i == n {
		return
	}

	m.noise.Next(&ra, &rb)

	out := dst[i:]
	in := src[i:]

	for j := range out {
		out[j] = tpdf(in[j], scale, ra[j], rb[j])
	}
}

// RunAdding accumulates dst[i] += Gain()*(src[i] + Scale(precision)*noise)
// for every i in dst. It draws exactly the same noise as Run would for the
// same call history. Zero-alloc.
func (m *Mixer) RunAdding(dst, src []float64, precision float64) {
	var ra, rb [Stride]float64

	scale := Scale(precision)
	gain := m.gain
	n := len(dst)
	src = src[:n]

	i := 0
	for ; i+Stride <= n; i += Stride {
		m.noise.Next(&ra, &rb)

		out := dst[i : i+Stride]
		in := src[i : i+Stride]

		for j := range out {
			out[j] += gain * tpdf(in[j], scale, ra[j], rb[j])
		}
	}

	if i == n {
		return
	}

	m.noise.Next(&ra, &rb)

	out := dst[i:]
	in := src[i:]

	for j := range out {
		out[j] += gain * tpdf(in[j], scale, ra[j], rb[j])
	}
}
