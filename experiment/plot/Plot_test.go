package plot

import (
	"bytes"
	"strings"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	got := MovingAverage(data, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("average[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = MovingAverage(data, 1)
	got[0] = 10
	if data[0] != 1 {
		t.Error("moving average over one element should copy data")
	}
}

func TestReturns(t *testing.T) {
	var buf bytes.Buffer
	err := Returns(&buf, "Taxi", 10,
		Series{Name: "alphaSeries", Returns: []float64{-200, -150, -20, 5}},
		Series{Name: "betaSeries", Returns: []float64{-180, -90}},
	)
	if err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, want := range []string{"alphaSeries", "betaSeries", "Taxi"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered chart does not contain %q", want)
		}
	}
}

func TestReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Returns(&buf, "Taxi", 10); err == nil {
		t.Error("plotting no series should fail")
	}
	if err := Returns(&buf, "Taxi", 10, Series{Name: "empty"}); err == nil {
		t.Error("plotting only empty series should fail")
	}
}
