package plugin

import (
	"math"
	"testing"
)

func TestLookup(t *testing.T) {
	desc := Lookup(0)
	if desc == nil {
		t.Fatal("Lookup(0) = nil, want dither descriptor")
	}

	for _, idx := range []uint{1, 2, 100} {
		if got := Lookup(idx); got != nil {
			t.Errorf("Lookup(%d) = %v, want nil", idx, got.Label)
		}
	}

	if Lookup(0) != desc {
		t.Error("Lookup(0) should return the same static descriptor")
	}
}

func TestDitherDescriptor(t *testing.T) {
	desc := Lookup(0)

	if desc.UniqueID != 5341 {
		t.Errorf("UniqueID = %d, want 5341", desc.UniqueID)
	}

	if DitherUniqueID != 5341 {
		t.Errorf("DitherUniqueID = %d, want 5341", DitherUniqueID)
	}

	if desc.Label != "dither" {
		t.Errorf("Label = %q, want %q", desc.Label, "dither")
	}

	if desc.Name != "Dither" {
		t.Errorf("Name = %q, want %q", desc.Name, "Dither")
	}

	if desc.Maker == "" || desc.Copyright == "" {
		t.Error("Maker and Copyright should be set")
	}

	if !desc.HardRTCapable() {
		t.Error("dither unit should be hard real-time capable")
	}

	if desc.Instantiate == nil {
		t.Fatal("Instantiate is nil")
	}
}

func TestDitherPorts(t *testing.T) {
	desc := Lookup(0)

	if len(desc.Ports) != 3 {
		t.Fatalf("len(Ports) = %d, want 3", len(desc.Ports))
	}

	tests := []struct {
		index   int
		name    string
		input   bool
		audio   bool
		control bool
	}{
		{DitherInput, "input", true, true, false},
		{DitherOutput, "output", false, true, false},
		{DitherPrecision, "precision", true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := desc.Ports[tt.index]

			if port.Name != tt.name {
				t.Errorf("Name = %q, want %q", port.Name, tt.name)
			}

			if port.IsInput() != tt.input || port.IsOutput() == tt.input {
				t.Errorf("direction: input=%v output=%v, want input=%v", port.IsInput(), port.IsOutput(), tt.input)
			}

			if port.IsAudio() != tt.audio || port.IsControl() != tt.control {
				t.Errorf("rate: audio=%v control=%v", port.IsAudio(), port.IsControl())
			}

			idx, ok := desc.PortIndex(tt.name)
			if !ok || idx != tt.index {
				t.Errorf("PortIndex(%q) = %d, %v, want %d", tt.name, idx, ok, tt.index)
			}
		})
	}

	if _, ok := desc.PortIndex("gain"); ok {
		t.Error("PortIndex(gain) should not be found")
	}
}

func TestPrecisionPortHints(t *testing.T) {
	port := Lookup(0).Ports[DitherPrecision]

	lo, hi := port.Bounds(48000)
	if lo != 1 || hi != 24 {
		t.Errorf("Bounds = [%v, %v], want [1, 24]", lo, hi)
	}

	def, ok := port.Default(48000)
	if !ok || def != 24 {
		t.Errorf("Default = %v, %v, want 24, true", def, ok)
	}

	if port.Range.Hints&HintInteger == 0 {
		t.Error("precision should be integer-valued")
	}

	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-5, 1},
		{16.4, 16},
		{16.6, 17},
		{30, 24},
	}
	for _, tt := range tests {
		if got := port.Clamp(tt.in, 48000); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPortDefault(t *testing.T) {
	bounded := HintBoundedBelow | HintBoundedAbove

	tests := []struct {
		name   string
		hint   RangeHint
		sr     float64
		want   float64
		wantOK bool
	}{
		{"none", RangeHint{Hints: bounded, LowerBound: 0, UpperBound: 1}, 0, 0, false},
		{"minimum", RangeHint{Hints: bounded | HintDefaultMinimum, LowerBound: 2, UpperBound: 8}, 0, 2, true},
		{"low", RangeHint{Hints: bounded | HintDefaultLow, LowerBound: 0, UpperBound: 8}, 0, 2, true},
		{"middle", RangeHint{Hints: bounded | HintDefaultMiddle, LowerBound: 0, UpperBound: 8}, 0, 4, true},
		{"high", RangeHint{Hints: bounded | HintDefaultHigh, LowerBound: 0, UpperBound: 8}, 0, 6, true},
		{"maximum", RangeHint{Hints: bounded | HintDefaultMaximum, LowerBound: 0, UpperBound: 8}, 0, 8, true},
		{"log middle", RangeHint{Hints: bounded | HintLogarithmic | HintDefaultMiddle, LowerBound: 1, UpperBound: 100}, 0, 10, true},
		{"sample rate", RangeHint{Hints: bounded | HintSampleRate | HintDefaultMaximum, LowerBound: 0, UpperBound: 0.5}, 48000, 24000, true},
		{"integer", RangeHint{Hints: bounded | HintInteger | HintDefaultLow, LowerBound: 1, UpperBound: 4}, 0, 2, true},
		{"zero", RangeHint{Hints: HintDefault0}, 0, 0, true},
		{"one", RangeHint{Hints: HintDefault1}, 0, 1, true},
		{"hundred", RangeHint{Hints: HintDefault100}, 0, 100, true},
		{"440", RangeHint{Hints: HintDefault440}, 0, 440, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := Port{Name: tt.name, Descriptor: PortInput | PortControl, Range: tt.hint}

			got, ok := port.Default(tt.sr)
			if ok != tt.wantOK {
				t.Fatalf("Default ok = %v, want %v", ok, tt.wantOK)
			}

			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Default = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortBoundsUnbounded(t *testing.T) {
	port := Port{Name: "free", Descriptor: PortInput | PortControl}

	lo, hi := port.Bounds(44100)
	if !math.IsInf(lo, -1) || !math.IsInf(hi, 1) {
		t.Errorf("Bounds = [%v, %v], want [-Inf, +Inf]", lo, hi)
	}

	if got := port.Clamp(1e9, 44100); got != 1e9 {
		t.Errorf("Clamp(1e9) = %v, want unchanged", got)
	}
}
