package floatutils

import (
	"math"
	"testing"
)

func TestMaxPropagate(t *testing.T) {
	if got := MaxPropagate([]float64{-2, 7, 3}); got != 7 {
		t.Errorf("MaxPropagate = %v, want 7", got)
	}
	if got := MaxPropagate([]float64{1, math.NaN(), 3}); !math.IsNaN(got) {
		t.Errorf("MaxPropagate = %v, want NaN", got)
	}
	if got := MaxPropagate([]float64{1, math.Inf(1)}); !math.IsInf(got, 1) {
		t.Errorf("MaxPropagate = %v, want +Inf", got)
	}
}

func TestClip(t *testing.T) {
	tests := []struct{ value, want float64 }{
		{-1, 0}, {0.5, 0.5}, {2, 1},
	}
	for _, test := range tests {
		if got := Clip(test.value, 0, 1); got != test.want {
			t.Errorf("Clip(%v) = %v, want %v", test.value, got, test.want)
		}
	}
}
