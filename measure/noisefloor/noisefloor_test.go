package noisefloor

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dither/dsp/dither"
	"github.com/cwbudde/algo-dither/dsp/window"
	"github.com/cwbudde/algo-dither/internal/testutil"
)

const sampleRate = 48000

// renderNoise runs the mixer over silence in blocks of 256.
func renderNoise(n int, precision float64) []float64 {
	var m dither.Mixer

	m.Reset()

	src := make([]float64, n)
	dst := make([]float64, n)

	for i := 0; i < n; i += 256 {
		end := min(i+256, n)
		m.Run(dst[i:end], src[i:end], precision)
	}

	return dst
}

func TestExpectedVariance(t *testing.T) {
	tests := []struct {
		precision float64
		want      float64
	}{
		{1, 1.0 / 6},
		{2, 0.25 / 6},
		{16, math.Exp2(-30) / 6},
	}

	for _, tt := range tests {
		if got := ExpectedVariance(tt.precision); math.Abs(got-tt.want) > 1e-18 {
			t.Errorf("ExpectedVariance(%v) = %v, want %v", tt.precision, got, tt.want)
		}
	}

	if got, want := ExpectedRMS(1), math.Sqrt(1.0/6); math.Abs(got-want) > 1e-15 {
		t.Errorf("ExpectedRMS(1) = %v, want %v", got, want)
	}
}

func TestAnalyzeDitherNoise(t *testing.T) {
	for _, precision := range []float64{1, 8, 16} {
		noise := renderNoise(1<<16, precision)

		r, err := Analyze(noise, sampleRate)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}

		scale := dither.Scale(precision)
		wantVar := ExpectedVariance(precision)

		if math.Abs(r.Mean) > 0.01*scale {
			t.Errorf("precision %v: mean = %v, want ~0", precision, r.Mean)
		}

		if rel := math.Abs(r.Variance-wantVar) / wantVar; rel > 0.02 {
			t.Errorf("precision %v: variance = %v, want %v (rel err %v)", precision, r.Variance, wantVar, rel)
		}

		if math.Abs(r.ExcessKurtosis+0.6) > 0.05 {
			t.Errorf("precision %v: excess kurtosis = %v, want ~-0.6", precision, r.ExcessKurtosis)
		}

		if r.Peak >= scale {
			t.Errorf("precision %v: peak = %v, want < %v", precision, r.Peak, scale)
		}

		if r.Frames != 64 {
			t.Errorf("precision %v: frames = %d, want 64", precision, r.Frames)
		}

		if r.Flatness < 0.95 {
			t.Errorf("precision %v: flatness = %v, want > 0.95", precision, r.Flatness)
		}

		if math.Abs(r.Centroid-sampleRate/4) > 0.05*sampleRate/4 {
			t.Errorf("precision %v: centroid = %v Hz, want ~%v", precision, r.Centroid, sampleRate/4.0)
		}
	}
}

func TestAnalyzeSine(t *testing.T) {
	sig := testutil.DeterministicSine(1000, sampleRate, 1, 1<<16)

	r, err := Analyze(sig, sampleRate)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if math.Abs(r.RMS-math.Sqrt(0.5)) > 1e-3 {
		t.Errorf("RMS = %v, want %v", r.RMS, math.Sqrt(0.5))
	}

	if math.Abs(r.RMS_dB+3.0103) > 0.01 {
		t.Errorf("RMS_dB = %v, want -3.01", r.RMS_dB)
	}

	if r.Flatness > 0.1 {
		t.Errorf("flatness = %v, want tonal (< 0.1)", r.Flatness)
	}

	if math.Abs(r.Centroid-1000) > 20 {
		t.Errorf("centroid = %v Hz, want ~1000", r.Centroid)
	}

	// A sine has zero skewness and excess kurtosis -1.5.
	if math.Abs(r.Skewness) > 0.01 {
		t.Errorf("skewness = %v, want ~0", r.Skewness)
	}

	if math.Abs(r.ExcessKurtosis+1.5) > 0.01 {
		t.Errorf("excess kurtosis = %v, want ~-1.5", r.ExcessKurtosis)
	}
}

func TestAnalyzeWhiteNoise(t *testing.T) {
	sig := testutil.DeterministicNoise(7, 1, 1<<15)

	r, err := Analyze(sig, sampleRate, WithFFTSize(512))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.Frames != 64 {
		t.Errorf("frames = %d, want 64", r.Frames)
	}

	if r.Flatness < 0.95 {
		t.Errorf("flatness = %v, want > 0.95", r.Flatness)
	}

	// Uniform noise on [-1, 1) has excess kurtosis -1.2.
	if math.Abs(r.ExcessKurtosis+1.2) > 0.05 {
		t.Errorf("excess kurtosis = %v, want ~-1.2", r.ExcessKurtosis)
	}
}

func TestAnalyzeShortSignal(t *testing.T) {
	r, err := Analyze([]float64{0.5, -0.5, 0.25}, sampleRate)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.Frames != 0 || r.Flatness != 0 || r.Centroid != 0 {
		t.Errorf("spectral fields = (%d, %v, %v), want zero", r.Frames, r.Flatness, r.Centroid)
	}

	if r.Peak != 0.5 {
		t.Errorf("peak = %v, want 0.5", r.Peak)
	}

	if got, want := r.Mean, 0.25/3; math.Abs(got-want) > 1e-15 {
		t.Errorf("mean = %v, want %v", got, want)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	r, err := Analyze(make([]float64, 2048), sampleRate)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !math.IsInf(r.RMS_dB, -1) || !math.IsInf(r.Peak_dB, -1) {
		t.Errorf("dB levels = (%v, %v), want -Inf", r.RMS_dB, r.Peak_dB)
	}

	if r.Variance != 0 || r.ExcessKurtosis != 0 || r.Flatness != 0 {
		t.Errorf("silence report = %+v, want zero moments and flatness", r)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, sampleRate); !errors.Is(err, ErrEmpty) {
		t.Errorf("Analyze(nil) error = %v, want ErrEmpty", err)
	}

	if _, err := Analyze([]float64{1}, sampleRate, WithWindow(window.Type(42))); err == nil {
		t.Error("WithWindow(42): expected error")
	}

	for _, n := range []int{0, 8, 1000, 1 << 21} {
		if _, err := Analyze([]float64{1}, sampleRate, WithFFTSize(n)); err == nil {
			t.Errorf("WithFFTSize(%d): expected error", n)
		}
	}
}

func TestAnalyzeWindowChoice(t *testing.T) {
	sig := testutil.DeterministicNoise(9, 1, 1<<15)

	tests := []struct {
		typ  window.Type
		enbw float64
	}{
		{window.TypeHann, 1.5},
		{window.TypeBlackman, 1.7268},
		{window.TypeRectangular, 1},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			r, err := Analyze(sig, sampleRate, WithWindow(tt.typ))
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}

			if math.Abs(r.ENBW-tt.enbw) > 1e-3 {
				t.Errorf("ENBW = %v, want %v", r.ENBW, tt.enbw)
			}

			if r.Flatness < 0.95 {
				t.Errorf("flatness = %v, want > 0.95", r.Flatness)
			}
		})
	}
}
