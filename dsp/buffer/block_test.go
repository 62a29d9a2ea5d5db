package buffer

import "testing"

func TestNewBlockShape(t *testing.T) {
	b := NewBlock(2, 5)

	if b.Channels() != 2 || b.Frames() != 5 {
		t.Fatalf("shape = %dx%d, want 2x5", b.Channels(), b.Frames())
	}

	for ch := range b.Channels() {
		if got := len(b.Channel(ch)); got != 5 {
			t.Errorf("len(Channel(%d)) = %d, want 5", ch, got)
		}
	}
}

func TestBlockChannelsDoNotOverlap(t *testing.T) {
	b := NewBlock(3, 4)

	for ch := range b.Channels() {
		for i := range b.Channel(ch) {
			b.Channel(ch)[i] = float64(ch*10 + i)
		}
	}

	for ch := range b.Channels() {
		for i, v := range b.Channel(ch) {
			if v != float64(ch*10+i) {
				t.Fatalf("Channel(%d)[%d] = %v, want %v", ch, i, v, ch*10+i)
			}
		}
	}

	// Appending to one channel must not spill into the next.
	_ = append(b.Channel(0), 99)
	if b.Channel(1)[0] != 10 {
		t.Fatalf("append to channel 0 overwrote channel 1: %v", b.Channel(1)[0])
	}
}

func TestBlockResizeZeroes(t *testing.T) {
	b := NewBlock(2, 8)
	b.Channel(1)[7] = 3

	b.Resize(2, 4)

	if b.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", b.Frames())
	}

	for ch := range b.Channels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v after Resize, want 0", ch, i, v)
			}
		}
	}
}

func TestBlockResizeNegative(t *testing.T) {
	b := NewBlock(-1, -3)
	if b.Channels() != 0 || b.Frames() != 0 {
		t.Fatalf("shape = %dx%d, want 0x0", b.Channels(), b.Frames())
	}
}

func TestBlockTruncate(t *testing.T) {
	b := NewBlock(2, 16)
	b.Truncate(5)

	if b.Frames() != 5 || len(b.Channel(0)) != 5 || len(b.Channel(1)) != 5 {
		t.Fatalf("Truncate(5): frames=%d lens=%d,%d", b.Frames(), len(b.Channel(0)), len(b.Channel(1)))
	}

	b.Truncate(50)
	if b.Frames() != 5 {
		t.Fatalf("Truncate past frames grew block to %d", b.Frames())
	}
}

func TestBlockInterleaveRoundTrip(t *testing.T) {
	src := []float64{1, -1, 2, -2, 3, -3, 4, -4, 5, -5}
	b := NewBlock(2, 4)

	if n := b.Deinterleave(src, 0); n != 4 {
		t.Fatalf("Deinterleave = %d frames, want 4", n)
	}

	if got := b.Channel(1)[2]; got != -3 {
		t.Fatalf("Channel(1)[2] = %v, want -3", got)
	}

	// Second read hits the end of the stream.
	if n := b.Deinterleave(src, 4); n != 1 {
		t.Fatalf("Deinterleave at offset 4 = %d frames, want 1", n)
	}

	dst := make([]float64, len(src))
	b.Interleave(dst, 4, 1)

	if dst[8] != 5 || dst[9] != -5 {
		t.Fatalf("Interleave wrote %v, %v, want 5, -5", dst[8], dst[9])
	}
}
