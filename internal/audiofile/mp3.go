package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// mp3 streams always decode to 16-bit little-endian stereo.
const (
	mp3Channels   = 2
	mp3BitDepth   = 16
	mp3FrameBytes = mp3Channels * mp3BitDepth / 8
)

// DecodeMP3 decodes an MP3 stream. The result is always stereo; mono sources
// are duplicated to both channels by the decoder.
func DecodeMP3(r io.Reader) (*Audio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", ErrUnsupportedFormat, err)
	}

	var hint int
	if length := dec.Length(); length > 0 {
		hint = int(length / 2)
	}

	samples, err := readPCM16(dec, hint)
	if err != nil {
		return nil, fmt.Errorf("audiofile: mp3: %w", err)
	}

	if len(samples) == 0 {
		return nil, ErrNoAudio
	}

	return &Audio{
		SampleRate: dec.SampleRate(),
		Channels:   mp3Channels,
		BitDepth:   mp3BitDepth,
		Samples:    samples,
	}, nil
}

// readPCM16 converts a stream of 16-bit little-endian samples to floats. A
// read that ends mid-sample keeps the odd byte for the next one.
func readPCM16(r io.Reader, hint int) ([]float64, error) {
	samples := make([]float64, 0, hint)
	chunk := make([]byte, 4096*mp3FrameBytes)
	carry := 0

	for {
		n, err := r.Read(chunk[carry:])
		n += carry

		even := n &^ 1
		for i := 0; i < even; i += 2 {
			v := int16(binary.LittleEndian.Uint16(chunk[i:]))
			samples = append(samples, float64(v)/(1<<15))
		}

		carry = n - even
		if carry > 0 {
			chunk[0] = chunk[even]
		}

		if errors.Is(err, io.EOF) {
			return samples, nil
		}

		if err != nil {
			return nil, err
		}
	}
}
