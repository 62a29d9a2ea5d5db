package noisefloor_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dither/dsp/dither"
	"github.com/cwbudde/algo-dither/measure/noisefloor"
)

func ExampleExpectedRMS() {
	for _, p := range []int{8, 16, 24} {
		fmt.Printf("%d bits: %.1f dBFS\n", p, 20*math.Log10(noisefloor.ExpectedRMS(float64(p))))
	}
	// Output:
	// 8 bits: -49.9 dBFS
	// 16 bits: -98.1 dBFS
	// 24 bits: -146.3 dBFS
}

func ExampleAnalyze() {
	var m dither.Mixer

	m.Reset()

	silence := make([]float64, 1<<14)
	noise := make([]float64, len(silence))
	m.Run(noise, silence, 16)

	r, err := noisefloor.Analyze(noise, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	ratio := r.Variance / noisefloor.ExpectedVariance(16)
	fmt.Printf("variance ratio within 5%%: %v\n", math.Abs(ratio-1) < 0.05)
	fmt.Printf("frames: %d\n", r.Frames)
	// Output:
	// variance ratio within 5%: true
	// frames: 16
}
