package matutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"single", []float64{3}, 0},
		{"last", []float64{1, 2, 3}, 2},
		{"first of ties", []float64{0, 5, 5, 1}, 1},
		{"all zero", []float64{0, 0, 0, 0, 0, 0}, 0},
		{"negative", []float64{-3, -1, -2}, 1},
		{"leading NaN", []float64{math.NaN(), -1, 4}, 2},
	}

	for _, test := range tests {
		v := mat.NewVecDense(len(test.values), test.values)
		if got := MaxVec(v); got != test.want {
			t.Errorf("%s: MaxVec(%v) = %d, want %d", test.name, test.values,
				got, test.want)
		}
	}
}
