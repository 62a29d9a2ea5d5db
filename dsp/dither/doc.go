// Package dither adds triangular-PDF (TPDF) dither noise to blocks of audio
// samples ahead of a bit-depth reduction, and requantizes the dithered signal
// to integer PCM.
//
// The noise comes from a [NoiseSource]: two banks of [Stride] small linear
// congruential generators that always advance together, one whole batch at a
// time. A [Mixer] owns one NoiseSource and offers two write policies over the
// same random stream:
//
//   - [Mixer.Run] overwrites dst with src plus noise.
//   - [Mixer.RunAdding] accumulates gain*(src plus noise) into dst.
//
// Both are allocation-free and deterministic for a given call history since
// the last [Mixer.Reset].
package dither
