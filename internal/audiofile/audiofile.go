// Package audiofile loads WAV and MP3 files into normalized, frame-interleaved
// float64 samples and writes them back as integer PCM WAV.
package audiofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-dither/dsp/dither"
)

var (
	// ErrUnsupportedFormat is returned for containers or encodings that
	// cannot be decoded.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrNoAudio is returned when a file holds no samples.
	ErrNoAudio = errors.New("audiofile: no audio data")
)

// Audio is a decoded stream. Samples are frame-interleaved and normalized to
// [-1, +1).
type Audio struct {
	SampleRate int
	Channels   int
	// BitDepth is the source word length, 0 if unknown.
	BitDepth int
	Samples  []float64
}

// Frames returns the number of frames in the stream.
func (a *Audio) Frames() int {
	if a.Channels == 0 {
		return 0
	}

	return len(a.Samples) / a.Channels
}

// Read decodes the file at path, choosing the decoder by extension.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return DecodeWAV(f)
	case ".mp3":
		return DecodeMP3(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Write encodes a as integer PCM WAV at path, requantized by rq.
func Write(path string, a *Audio, rq *dither.Requantizer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	err = EncodeWAV(f, a, rq)
	if err != nil {
		_ = f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	return nil
}
