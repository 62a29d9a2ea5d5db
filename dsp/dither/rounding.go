package dither

import "fmt"

// Rounding selects how a Requantizer maps scaled samples to integers.
type Rounding int

const (
	// RoundNearest rounds half away from zero.
	RoundNearest Rounding = iota
	// RoundFloor truncates toward negative infinity.
	RoundFloor

	roundingCount // sentinel for validation
)

var roundingNames = [roundingCount]string{"Nearest", "Floor"}

// String returns the name of the rounding mode.
func (r Rounding) String() string {
	if r.Valid() {
		return roundingNames[r]
	}

	return fmt.Sprintf("Rounding(%d)", r)
}

// Valid reports whether r is a known rounding mode.
func (r Rounding) Valid() bool {
	return r >= 0 && r < roundingCount
}
