package plugin

// Properties are capability flags a host reads before scheduling a unit.
type Properties int

const (
	// PropertyRealtime marks a unit with a real-time dependency on its input.
	PropertyRealtime Properties = 0x1
	// PropertyInplaceBroken marks a unit that cannot share input and output buffers.
	PropertyInplaceBroken Properties = 0x2
	// PropertyHardRTCapable marks a unit safe to run on a hard real-time thread.
	PropertyHardRTCapable Properties = 0x4
)

// Instance is one live processing unit created by a Descriptor.
//
// Methods are not safe for concurrent use. Run, RunAdding and
// SetRunAddingGain are the real-time calls; none of them allocates.
type Instance interface {
	// ConnectPort binds a port to a buffer. Control ports read data[0].
	// Bindings may change between processing calls.
	ConnectPort(port int, data []float64)

	// Activate resets the unit to its deterministic starting state.
	Activate()

	// Run processes sampleCount samples, overwriting the output port.
	Run(sampleCount int)

	// RunAdding processes sampleCount samples, adding the gain-scaled result
	// to the output port.
	RunAdding(sampleCount int)

	// SetRunAddingGain sets the gain used by RunAdding.
	SetRunAddingGain(gain float64)

	// Deactivate marks the end of a processing session.
	Deactivate()

	// Cleanup releases the instance. It must not be used afterwards.
	Cleanup()
}

// Descriptor is the static record a host reads to discover and create a unit.
type Descriptor struct {
	UniqueID   uint32
	Label      string
	Name       string
	Maker      string
	Copyright  string
	Properties Properties
	Ports      []Port

	// Instantiate creates a new instance for the given sample rate. It returns
	// nil if the instance could not be created.
	Instantiate func(sampleRate uint) Instance
}

// HardRTCapable reports whether the unit may run on a hard real-time thread.
func (d *Descriptor) HardRTCapable() bool {
	return d.Properties&PropertyHardRTCapable != 0
}

// PortIndex returns the index of the port with the given name.
func (d *Descriptor) PortIndex(name string) (int, bool) {
	for i, p := range d.Ports {
		if p.Name == name {
			return i, true
		}
	}

	return -1, false
}

// descriptors is the fixed table served by Lookup.
var descriptors = [...]*Descriptor{&ditherDescriptor}

// Lookup returns the descriptor at index, or nil if there is no such unit.
func Lookup(index uint) *Descriptor {
	if index >= uint(len(descriptors)) {
		return nil
	}

	return descriptors[index]
}
