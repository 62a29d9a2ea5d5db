package noisefloor

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dither/dsp/dither"
	"github.com/cwbudde/algo-dither/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmpty is returned when there is nothing to analyze.
var ErrEmpty = errors.New("noisefloor: empty signal")

// Report holds the measured statistics of a signal.
type Report struct {
	Length     int
	SampleRate float64

	Mean     float64
	Variance float64
	RMS      float64
	RMS_dB   float64
	Peak     float64
	Peak_dB  float64

	Skewness       float64
	ExcessKurtosis float64 // -0.6 for ideal TPDF noise

	// Spectral shape of the averaged magnitude spectrum. Frames is the number
	// of FFT frames averaged; zero when the signal is shorter than one frame,
	// in which case the spectral fields are zero.
	Frames   int
	Flatness float64 // geometric over arithmetic mean, 1 for white noise
	Centroid float64 // Hz
	ENBW     float64 // equivalent noise bandwidth of the window, in bins
}

// ExpectedVariance returns the variance of TPDF dither noise at the given
// precision: scale²/6.
func ExpectedVariance(precision float64) float64 {
	s := dither.Scale(precision)
	return s * s / 6
}

// ExpectedRMS returns the RMS level of TPDF dither noise at the given
// precision.
func ExpectedRMS(precision float64) float64 {
	return math.Sqrt(ExpectedVariance(precision))
}

// Analyze measures signal sampled at sampleRate. A non-positive sample rate
// reports the centroid in cycles per sample.
func Analyze(signal []float64, sampleRate float64, opts ...Option) (Report, error) {
	if len(signal) == 0 {
		return Report{}, ErrEmpty
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Report{}, err
		}
	}

	if sampleRate <= 0 {
		sampleRate = 1
	}

	r := Report{Length: len(signal), SampleRate: sampleRate}
	r.moments(signal)
	r.Peak = vecmath.MaxAbs(signal)
	r.Peak_dB = ampTodB(r.Peak)

	if err := r.spectrum(signal, cfg); err != nil {
		return Report{}, err
	}

	return r, nil
}

// moments runs Welford's update for the first four central moments.
func (r *Report) moments(signal []float64) {
	var (
		mean, m2, m3, m4, sumSq float64
		n                       float64
	)

	for _, x := range signal {
		n1 := n
		n++
		delta := x - mean
		deltaN := delta / n
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * n1

		mean += deltaN
		m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(n-2) - 3*deltaN*m2
		m2 += term1
		sumSq += x * x
	}

	r.Mean = mean
	r.Variance = m2 / n
	r.RMS = math.Sqrt(sumSq / n)
	r.RMS_dB = ampTodB(r.RMS)

	if m2 > 0 {
		r.Skewness = math.Sqrt(n) * m3 / math.Pow(m2, 1.5)
		r.ExcessKurtosis = n*m4/(m2*m2) - 3
	}
}

// spectrum averages the magnitude spectra of consecutive non-overlapping
// windowed frames.
func (r *Report) spectrum(signal []float64, cfg config) error {
	size := cfg.fftSize

	frames := len(signal) / size
	if frames == 0 {
		return nil
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("noisefloor: fft plan: %w", err)
	}

	win := window.Generate(cfg.window, size, window.WithPeriodic())

	enbw, err := window.EquivalentNoiseBandwidth(win)
	if err != nil {
		return fmt.Errorf("noisefloor: %w", err)
	}
	bins := size/2 + 1
	frame := make([]float64, size)
	in := make([]complex128, size)
	out := make([]complex128, size)
	re := make([]float64, bins)
	im := make([]float64, bins)
	mag := make([]float64, bins)
	avg := make([]float64, bins)

	for f := range frames {
		copy(frame, signal[f*size:(f+1)*size])

		if err := window.ApplyCoefficientsInPlace(frame, win); err != nil {
			return fmt.Errorf("noisefloor: %w", err)
		}

		for i, v := range frame {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return fmt.Errorf("noisefloor: fft: %w", err)
		}

		for k := range bins {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		vecmath.Magnitude(mag, re, im)
		vecmath.AddBlockInPlace(avg, mag)
	}

	vecmath.ScaleBlockInPlace(avg, 1/float64(frames))

	r.Frames = frames
	r.Flatness = flatness(avg)
	r.Centroid = centroid(avg, r.SampleRate, size)
	r.ENBW = enbw

	return nil
}

// flatness skips the DC bin. A spectrum containing an exact zero has a
// geometric mean of zero.
func flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}

	var logSum, sum float64

	for _, v := range mag[1:] {
		if v <= 0 {
			return 0
		}

		logSum += math.Log(v)
		sum += v
	}

	n := float64(len(mag) - 1)
	arith := sum / n

	return math.Exp(logSum/n) / arith
}

func centroid(mag []float64, sampleRate float64, size int) float64 {
	sum := vecmath.Sum(mag)
	if sum <= 0 {
		return 0
	}

	binHz := sampleRate / float64(size)

	var weighted float64
	for k, v := range mag {
		weighted += float64(k) * binHz * v
	}

	return weighted / sum
}

func ampTodB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}
