package audiofile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-dither/dsp/dither"
)

const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xfffe

	fmtBaseSize       = 16
	fmtExtensibleSize = 40
)

// subtypePCM is the KSDATAFORMAT_SUBTYPE_PCM GUID as stored in an extensible
// fmt chunk.
var subtypePCM = []byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// DecodeWAV decodes an integer PCM WAV stream (8, 16, 24 or 32 bit), plain
// or WAVE_FORMAT_EXTENSIBLE with the PCM sub-format.
func DecodeWAV(r io.ReadSeeker) (*Audio, error) {
	format, err := wavFormatTag(r)
	if err != nil {
		return nil, err
	}

	if format != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav audio format %#x", ErrUnsupportedFormat, format)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file", ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: wav: %w", err)
	}

	if len(buf.Data) == 0 {
		return nil, ErrNoAudio
	}

	bits := int(dec.BitDepth)

	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedFormat, bits)
	}

	var offset int
	if bits == 8 {
		// 8-bit WAV samples are unsigned.
		offset = 128
	}

	norm := 1 / float64(int(1)<<(bits-1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v-offset) * norm
	}

	return &Audio{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   bits,
		Samples:    samples,
	}, nil
}

// wavFormatTag returns the format tag of the fmt chunk, resolving an
// extensible chunk to the tag embedded in its sub-format GUID. r is rewound
// to the start of the stream.
func wavFormatTag(r io.ReadSeeker) (uint16, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil || p.Format != riff.WavFormatID {
		return 0, fmt.Errorf("%w: not a valid wav file", ErrUnsupportedFormat)
	}

	var body []byte

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrUnsupportedFormat)
		}

		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		body = make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, body); err != nil {
			return 0, fmt.Errorf("audiofile: wav fmt chunk: %w", err)
		}

		break
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("audiofile: wav: %w", err)
	}

	if len(body) < fmtBaseSize {
		return 0, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedFormat)
	}

	tag := binary.LittleEndian.Uint16(body)
	if tag != wavFormatExtensible {
		return tag, nil
	}

	if len(body) < fmtExtensibleSize {
		return 0, fmt.Errorf("%w: short extensible fmt chunk", ErrUnsupportedFormat)
	}

	guid := body[24:40]
	if !bytes.Equal(guid[2:], subtypePCM[2:]) {
		return 0, fmt.Errorf("%w: unknown wav sub-format", ErrUnsupportedFormat)
	}

	return binary.LittleEndian.Uint16(guid), nil
}

// EncodeWAV writes a as integer PCM WAV. The word length is rq.BitDepth(),
// which must be 8, 16, 24 or 32.
func EncodeWAV(w io.WriteSeeker, a *Audio, rq *dither.Requantizer) error {
	bits := rq.BitDepth()

	switch bits {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit wav output", ErrUnsupportedFormat, bits)
	}

	if a.Channels <= 0 || a.SampleRate <= 0 {
		return fmt.Errorf("audiofile: invalid stream: %d channels at %d Hz", a.Channels, a.SampleRate)
	}

	data := make([]int, len(a.Samples))
	rq.QuantizeBlock(data, a.Samples)

	if bits == 8 {
		for i := range data {
			data[i] += 128
		}
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: a.Channels,
			SampleRate:  a.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bits,
	}

	enc := wav.NewEncoder(w, a.SampleRate, bits, a.Channels, wavFormatPCM)

	err := enc.Write(buf)
	if err != nil {
		return fmt.Errorf("audiofile: wav: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("audiofile: wav: %w", err)
	}

	return nil
}
