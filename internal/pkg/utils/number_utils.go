package utils

import "math"

// RoundTo rounds v to the given number of decimal places, half away from zero.
// Example: RoundTo(1.23456, 2) => 1.23
func RoundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow10(places)
	return math.Round(v*pow) / pow
}

// Uniform maps a value from [0,1) onto [lo,hi).
func Uniform(unit, lo, hi float64) float64 {
	return lo + (hi-lo)*unit
}
