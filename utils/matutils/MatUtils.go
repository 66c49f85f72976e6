// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
// NaN values are never selected unless every value is NaN, in which
// case 0 is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0

	for i := 1; i < values.Len(); i++ {
		if v := values.AtVec(i); v > max || (math.IsNaN(max) && !math.IsNaN(v)) {
			max = v
			idx = i
		}
	}
	return idx
}

// Shape returns the dimensions of a matrix as a string, useful for
// error messages
func Shape(m mat.Matrix) string {
	r, c := m.Dims()
	return fmt.Sprintf("(%d, %d)", r, c)
}
