package plugin

import "math"

// PortDescriptor classifies a port by direction and rate.
type PortDescriptor int

const (
	// PortInput marks a port the host writes and the unit reads.
	PortInput PortDescriptor = 0x1
	// PortOutput marks a port the unit writes.
	PortOutput PortDescriptor = 0x2
	// PortControl marks a single-value port read once per block.
	PortControl PortDescriptor = 0x4
	// PortAudio marks a port carrying one value per sample.
	PortAudio PortDescriptor = 0x8
)

// HintDescriptor describes how a host should present and bound a control
// port. The default-value bits are a small enumeration under HintDefaultMask.
type HintDescriptor int

const (
	// HintBoundedBelow marks RangeHint.LowerBound as meaningful.
	HintBoundedBelow HintDescriptor = 0x1
	// HintBoundedAbove marks RangeHint.UpperBound as meaningful.
	HintBoundedAbove HintDescriptor = 0x2
	// HintToggled marks an on/off control: <= 0 is off, > 0 is on.
	HintToggled HintDescriptor = 0x4
	// HintSampleRate means the bounds are multiples of the sample rate.
	HintSampleRate HintDescriptor = 0x8
	// HintLogarithmic asks hosts to present the control on a log scale.
	HintLogarithmic HintDescriptor = 0x10
	// HintInteger marks a control that only takes whole numbers.
	HintInteger HintDescriptor = 0x20

	// HintDefaultMask selects the default-value bits.
	HintDefaultMask HintDescriptor = 0x3c0
	// HintDefaultNone declares no default.
	HintDefaultNone HintDescriptor = 0x0
	// HintDefaultMinimum defaults to the lower bound.
	HintDefaultMinimum HintDescriptor = 0x40
	// HintDefaultLow defaults a quarter of the way from lower to upper bound.
	HintDefaultLow HintDescriptor = 0x80
	// HintDefaultMiddle defaults halfway between the bounds.
	HintDefaultMiddle HintDescriptor = 0xc0
	// HintDefaultHigh defaults three quarters of the way to the upper bound.
	HintDefaultHigh HintDescriptor = 0x100
	// HintDefaultMaximum defaults to the upper bound.
	HintDefaultMaximum HintDescriptor = 0x140
	// HintDefault0 defaults to 0.
	HintDefault0 HintDescriptor = 0x200
	// HintDefault1 defaults to 1.
	HintDefault1 HintDescriptor = 0x240
	// HintDefault100 defaults to 100.
	HintDefault100 HintDescriptor = 0x280
	// HintDefault440 defaults to 440, concert A in Hz.
	HintDefault440 HintDescriptor = 0x2c0
)

// RangeHint carries the hint flags and bounds of a port.
type RangeHint struct {
	Hints      HintDescriptor
	LowerBound float64
	UpperBound float64
}

// Port is the static description of one port of a unit.
type Port struct {
	Name       string
	Descriptor PortDescriptor
	Range      RangeHint
}

// IsInput reports whether the port is read by the unit.
func (p Port) IsInput() bool { return p.Descriptor&PortInput != 0 }

// IsOutput reports whether the port is written by the unit.
func (p Port) IsOutput() bool { return p.Descriptor&PortOutput != 0 }

// IsAudio reports whether the port carries one value per sample.
func (p Port) IsAudio() bool { return p.Descriptor&PortAudio != 0 }

// IsControl reports whether the port carries a single value per block.
func (p Port) IsControl() bool { return p.Descriptor&PortControl != 0 }

// Bounds returns the port bounds, scaled by sampleRate when the port is
// hinted HintSampleRate. Missing bounds are reported as infinities.
func (p Port) Bounds(sampleRate float64) (lo, hi float64) {
	hint := p.Range.Hints

	lo, hi = math.Inf(-1), math.Inf(1)
	if hint&HintBoundedBelow != 0 {
		lo = p.Range.LowerBound
	}

	if hint&HintBoundedAbove != 0 {
		hi = p.Range.UpperBound
	}

	if hint&HintSampleRate != 0 {
		lo *= sampleRate
		hi *= sampleRate
	}

	return lo, hi
}

// Default resolves the suggested initial value of a control port from its
// hints. It reports false when the port declares no default.
//
//nolint:cyclop
func (p Port) Default(sampleRate float64) (float64, bool) {
	hint := p.Range.Hints
	lo, hi := p.Range.LowerBound, p.Range.UpperBound

	if hint&HintSampleRate != 0 {
		lo *= sampleRate
		hi *= sampleRate
	}

	var val float64

	switch hint & HintDefaultMask {
	case HintDefaultMinimum:
		val = lo
	case HintDefaultLow:
		val = interpolate(lo, hi, 0.25, hint&HintLogarithmic != 0)
	case HintDefaultMiddle:
		val = interpolate(lo, hi, 0.5, hint&HintLogarithmic != 0)
	case HintDefaultHigh:
		val = interpolate(lo, hi, 0.75, hint&HintLogarithmic != 0)
	case HintDefaultMaximum:
		val = hi
	case HintDefault0:
		return 0, true
	case HintDefault1:
		return 1, true
	case HintDefault100:
		return 100, true
	case HintDefault440:
		return 440, true
	default:
		return 0, false
	}

	if hint&HintInteger != 0 {
		val = math.Round(val)
	}

	return val, true
}

// Clamp limits v to the port bounds and, for integer ports, rounds it.
// Hosts use it before binding control values; the unit itself never clamps.
func (p Port) Clamp(v, sampleRate float64) float64 {
	lo, hi := p.Bounds(sampleRate)
	v = max(lo, min(hi, v))

	if p.Range.Hints&HintInteger != 0 {
		v = math.Round(v)
	}

	return v
}

// interpolate moves a fraction t from lo toward hi, linearly or in the log
// domain.
func interpolate(lo, hi, t float64, logarithmic bool) float64 {
	if logarithmic && lo > 0 && hi > 0 {
		return math.Exp(math.Log(lo)*(1-t) + math.Log(hi)*t)
	}

	return lo*(1-t) + hi*t
}
