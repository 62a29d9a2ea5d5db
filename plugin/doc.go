// Package plugin exposes the dither unit through a LADSPA-style host
// boundary: a statically owned [Descriptor] looked up by index, port metadata
// with range hints, and an [Instance] capability set (connect ports,
// activate, run, run adding, set gain, clean up).
//
// The processing calls never validate their inputs. A host must bind every
// port to a buffer of at least the requested sample count before calling Run
// or RunAdding, and must call SetRunAddingGain before the first RunAdding.
package plugin
