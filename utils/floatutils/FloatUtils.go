// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Max calculates and returns the maximum float64 in a list
func Max(floats ...float64) float64 {
	max := floats[0]
	for _, val := range floats {
		if val > max {
			max = val
		}
	}
	return max
}

// MaxPropagate returns the maximum float64 in a slice. Unlike Max, a NaN
// anywhere in the slice makes the result NaN.
func MaxPropagate(floats []float64) float64 {
	max := math.Inf(-1)
	for _, val := range floats {
		if math.IsNaN(val) {
			return val
		}
		if val > max {
			max = val
		}
	}
	return max
}
