package plugin

import "github.com/cwbudde/algo-dither/dsp/dither"

// Port indices of the dither unit.
const (
	DitherInput = iota
	DitherOutput
	DitherPrecision

	ditherPortCount
)

// DitherUniqueID is the stable identifier of the dither unit.
const DitherUniqueID = 5341

var ditherDescriptor = Descriptor{
	UniqueID:   DitherUniqueID,
	Label:      "dither",
	Name:       "Dither",
	Maker:      "Daniel Fox Franke <dfoxfranke@gmail.com>",
	Copyright:  "Copyright (c) 2017 Daniel Fox Franke",
	Properties: PropertyHardRTCapable,
	Ports: []Port{
		{Name: "input", Descriptor: PortInput | PortAudio},
		{Name: "output", Descriptor: PortOutput | PortAudio},
		{
			Name:       "precision",
			Descriptor: PortInput | PortControl,
			Range: RangeHint{
				Hints:      HintBoundedBelow | HintBoundedAbove | HintInteger | HintDefaultMaximum,
				LowerBound: dither.MinPrecision,
				UpperBound: dither.MaxPrecision,
			},
		},
	},
	Instantiate: instantiateDither,
}

type ditherInstance struct {
	mix        dither.Mixer
	sampleRate uint
	ports      [ditherPortCount][]float64
}

func instantiateDither(sampleRate uint) Instance {
	return &ditherInstance{sampleRate: sampleRate}
}

func (d *ditherInstance) ConnectPort(port int, data []float64) {
	d.ports[port] = data
}

func (d *ditherInstance) Activate() {
	d.mix.Reset()
}

func (d *ditherInstance) Run(sampleCount int) {
	d.mix.Run(
		d.ports[DitherOutput][:sampleCount],
		d.ports[DitherInput][:sampleCount],
		d.ports[DitherPrecision][0],
	)
}

func (d *ditherInstance) RunAdding(sampleCount int) {
	d.mix.RunAdding(
		d.ports[DitherOutput][:sampleCount],
		d.ports[DitherInput][:sampleCount],
		d.ports[DitherPrecision][0],
	)
}

func (d *ditherInstance) SetRunAddingGain(gain float64) {
	d.mix.SetGain(gain)
}

func (d *ditherInstance) Deactivate() {}

func (d *ditherInstance) Cleanup() {
	d.ports = [ditherPortCount][]float64{}
}
