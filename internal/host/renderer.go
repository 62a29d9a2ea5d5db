// Package host drives plugin units the way an audio host does: it binds
// ports block by block, activates once per session, and calls Run or
// RunAdding with only the block length.
package host

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-dither/dsp/buffer"
	"github.com/cwbudde/algo-dither/plugin"
)

var (
	// ErrNoDescriptor is returned when a Renderer is created without a unit.
	ErrNoDescriptor = errors.New("host: nil descriptor")
	// ErrNoAudioPorts is returned for units lacking an audio input or output.
	ErrNoAudioPorts = errors.New("host: unit needs one audio input and one audio output")
	// ErrInstantiate is returned when a unit fails to instantiate.
	ErrInstantiate = errors.New("host: instantiate failed")
)

type boundControl struct {
	port  int
	value []float64
}

// Stats summarizes one Render call.
type Stats struct {
	Frames int
	Blocks int
	Peak   float64
}

// Renderer runs one unit instance per channel over planar blocks.
// It is not safe for concurrent use.
type Renderer struct {
	desc       *plugin.Descriptor
	cfg        config
	sampleRate uint

	inPort   int
	outPort  int
	controls []boundControl

	instances []plugin.Instance
	pool      *buffer.Pool
}

// NewRenderer instantiates and activates desc once per channel.
func NewRenderer(desc *plugin.Descriptor, channels int, sampleRate uint, opts ...Option) (*Renderer, error) {
	if desc == nil {
		return nil, ErrNoDescriptor
	}

	if channels <= 0 {
		return nil, fmt.Errorf("host: channel count must be > 0: %d", channels)
	}

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

	r := &Renderer{
		desc:       desc,
		cfg:        cfg,
		sampleRate: sampleRate,
		inPort:     -1,
		outPort:    -1,
		pool:       buffer.NewPool(),
	}

	err := r.bindPorts()
	if err != nil {
		return nil, err
	}

	for range channels {
		inst := desc.Instantiate(sampleRate)
		if inst == nil {
			r.Close()
			return nil, fmt.Errorf("%w: %s", ErrInstantiate, desc.Label)
		}

		for _, ctl := range r.controls {
			inst.ConnectPort(ctl.port, ctl.value)
		}

		inst.SetRunAddingGain(cfg.gain)
		inst.Activate()

		r.instances = append(r.instances, inst)
	}

	return r, nil
}

func (r *Renderer) bindPorts() error {
	used := make(map[string]bool, len(r.cfg.controls))

	for idx, port := range r.desc.Ports {
		switch {
		case port.IsAudio() && port.IsInput():
			if r.inPort < 0 {
				r.inPort = idx
			}
		case port.IsAudio() && port.IsOutput():
			if r.outPort < 0 {
				r.outPort = idx
			}
		case port.IsControl() && port.IsInput():
			val, ok := r.cfg.controls[port.Name]
			if ok {
				used[port.Name] = true
			} else {
				val, _ = port.Default(float64(r.sampleRate))
			}

			val = port.Clamp(val, float64(r.sampleRate))
			r.controls = append(r.controls, boundControl{port: idx, value: []float64{val}})
		}
	}

	if r.inPort < 0 || r.outPort < 0 {
		return fmt.Errorf("%w: %s", ErrNoAudioPorts, r.desc.Label)
	}

	for name := range r.cfg.controls {
		if !used[name] {
			return fmt.Errorf("host: %s has no control input %q", r.desc.Label, name)
		}
	}

	return nil
}

// Channels returns the number of channels, one unit instance each.
func (r *Renderer) Channels() int { return len(r.instances) }

// BlockSize returns the maximum number of frames per processing call.
func (r *Renderer) BlockSize() int { return r.cfg.blockSize }

// Mode returns the processing mode.
func (r *Renderer) Mode() Mode { return r.cfg.mode }

// Control returns the bound value of the named control port.
func (r *Renderer) Control(name string) (float64, bool) {
	idx, ok := r.desc.PortIndex(name)
	if !ok {
		return 0, false
	}

	for _, ctl := range r.controls {
		if ctl.port == idx {
			return ctl.value[0], true
		}
	}

	return 0, false
}

// ProcessBlock runs every channel of src through its instance into dst. In
// ModeAdding the result is added to dst's existing contents. Both blocks must
// have Channels() channels and src.Frames() must not exceed BlockSize().
func (r *Renderer) ProcessBlock(dst, src *buffer.Block) {
	n := src.Frames()

	for ch, inst := range r.instances {
		inst.ConnectPort(r.inPort, src.Channel(ch))
		inst.ConnectPort(r.outPort, dst.Channel(ch))

		if r.cfg.mode == ModeAdding {
			inst.RunAdding(n)
		} else {
			inst.Run(n)
		}
	}
}

// Render processes a whole frame-interleaved stream block by block. dst must
// be as long as src; in ModeAdding its existing contents are kept and the
// unit output is added on top.
func (r *Renderer) Render(dst, src []float64) (Stats, error) {
	nch := len(r.instances)
	if nch == 0 {
		return Stats{}, errors.New("host: renderer is closed")
	}

	if len(src)%nch != 0 {
		return Stats{}, fmt.Errorf("host: %d samples is not a whole number of %d-channel frames", len(src), nch)
	}

	if len(dst) != len(src) {
		return Stats{}, fmt.Errorf("host: destination has %d samples, want %d", len(dst), len(src))
	}

	in := r.pool.Get(nch, r.cfg.blockSize)
	out := r.pool.Get(nch, r.cfg.blockSize)

	defer r.pool.Put(in)
	defer r.pool.Put(out)

	var stats Stats

	frames := len(src) / nch
	for offset := 0; offset < frames; offset += r.cfg.blockSize {
		n := in.Deinterleave(src, offset)
		in.Truncate(n)
		out.Truncate(n)

		if r.cfg.mode == ModeAdding {
			out.Deinterleave(dst, offset)
		}

		r.ProcessBlock(out, in)
		out.Interleave(dst, offset, n)

		for ch := range nch {
			stats.Peak = max(stats.Peak, vecmath.MaxAbs(out.Channel(ch)))
		}

		stats.Frames += n
		stats.Blocks++
	}

	return stats, nil
}

// Reset re-activates every instance, restarting their deterministic state.
func (r *Renderer) Reset() {
	for _, inst := range r.instances {
		inst.Deactivate()
		inst.Activate()
	}
}

// Close deactivates and releases every instance.
func (r *Renderer) Close() {
	for _, inst := range r.instances {
		inst.Deactivate()
		inst.Cleanup()
	}

	r.instances = nil
}
