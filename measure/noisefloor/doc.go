// Package noisefloor measures the statistics of a dither noise floor.
//
// [Analyze] reports time-domain moments (mean, variance, skewness, excess
// kurtosis), level (RMS and peak, linear and dB) and the spectral shape of a
// signal, estimated from averaged windowed FFT frames (Hann unless
// [WithWindow] selects another). [ExpectedVariance] and [ExpectedRMS] give
// the theoretical figures for TPDF noise at a given precision, so a rendered
// noise floor can be checked against them.
package noisefloor
