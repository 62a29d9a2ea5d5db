package buffer

// Block holds Channels() planar channels of Frames() samples each.
type Block struct {
	backing  []float64
	channels [][]float64
	frames   int
}

// NewBlock returns a zero-filled Block.
func NewBlock(channels, frames int) *Block {
	b := &Block{}
	b.Resize(channels, frames)

	return b
}

// Channels returns the number of channels.
func (b *Block) Channels() int { return len(b.channels) }

// Frames returns the number of samples per channel.
func (b *Block) Frames() int { return b.frames }

// Channel returns the samples of channel ch. The slice aliases the block.
func (b *Block) Channel(ch int) []float64 { return b.channels[ch] }

// Resize sets the shape of the block, reusing the backing array when its
// capacity allows. Contents are zeroed.
func (b *Block) Resize(channels, frames int) {
	channels = max(channels, 0)
	frames = max(frames, 0)

	size := channels * frames
	if size <= cap(b.backing) {
		b.backing = b.backing[:size]
	} else {
		b.backing = make([]float64, size)
	}

	if channels <= cap(b.channels) {
		b.channels = b.channels[:channels]
	} else {
		b.channels = make([][]float64, channels)
	}

	for ch := range b.channels {
		b.channels[ch] = b.backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}

	b.frames = frames
	b.Zero()
}

// Zero sets all samples of all channels to 0.
func (b *Block) Zero() {
	clear(b.backing)
}

// Truncate shortens every channel to n frames without touching the backing
// array. It is used for the final, partial block of a stream.
func (b *Block) Truncate(n int) {
	n = max(0, min(n, b.frames))
	for ch := range b.channels {
		b.channels[ch] = b.channels[ch][:n]
	}

	b.frames = n
}

// Deinterleave fills the block from frame-interleaved samples, starting at
// frame offset. It returns the number of frames copied.
func (b *Block) Deinterleave(src []float64, offset int) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}

	total := len(src) / nch
	n := max(0, min(b.frames, total-offset))

	for ch, dst := range b.channels {
		for i := range n {
			dst[i] = src[(offset+i)*nch+ch]
		}
	}

	return n
}

// Interleave writes the first n frames of the block into dst at frame offset.
func (b *Block) Interleave(dst []float64, offset, n int) {
	nch := len(b.channels)
	for ch, src := range b.channels {
		for i := range n {
			dst[(offset+i)*nch+ch] = src[i]
		}
	}
}
