package dither

const (
	lcgMul  = 0x43fd43fd
	lcgInc  = 0xc39ec6
	lcgMask = 1<<24 - 1
	lcgNorm = 0x1p-24
)

// NoiseSource generates pairs of uniform random values on [0, 1).
//
// It holds two banks of Stride 24-bit linear congruential generators,
//
//	state = (0x43FD43FD*state + 0xC39EC6) mod 2^24
//
// seeded with 0..Stride-1 and Stride..2*Stride-1. Every call to Next steps
// all generators once, so state only ever moves in whole batches.
//
// The zero value is not seeded; call Reset or use NewNoiseSource.
type NoiseSource struct {
	a [Stride]uint32
	b [Stride]uint32
}

// NewNoiseSource returns a NoiseSource at its fixed seed.
func NewNoiseSource() *NoiseSource {
	ns := &NoiseSource{}
	ns.Reset()

	return ns
}

// Reset reseeds both banks to their fixed starting states.
func (ns *NoiseSource) Reset() {
	for i := range Stride {
		ns.a[i] = uint32(i)
		ns.b[i] = uint32(i + Stride)
	}
}

// Next advances every generator of both banks by one step and writes the
// normalized states to a and b.
func (ns *NoiseSource) Next(a, b *[Stride]float64) {
	for i := range Stride {
		ns.a[i] = lcgStep(ns.a[i])
		ns.b[i] = lcgStep(ns.b[i])
		a[i] = float64(ns.a[i]) * lcgNorm
		b[i] = float64(ns.b[i]) * lcgNorm
	}
}

// State returns a copy of the raw generator states of both banks.
func (ns *NoiseSource) State() (a, b [Stride]uint32) {
	return ns.a, ns.b
}

func lcgStep(state uint32) uint32 {
	return (lcgMul*state + lcgInc) & lcgMask
}
