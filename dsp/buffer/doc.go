// Package buffer provides planar multi-channel sample blocks and a pool for
// reusing them across processing calls. A Block hands out one []float64 per
// channel, all carved from a single backing slice, which is the shape a host
// binds to unit ports block by block.
package buffer
