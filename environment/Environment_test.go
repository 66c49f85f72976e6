package environment

import (
	"testing"

	"github.com/samuelfneumann/qtaxi/timestep"
	"gonum.org/v1/gonum/mat"
)

func TestDiscreteSpecSize(t *testing.T) {
	for _, n := range []int{1, 6, 500} {
		size, err := NewDiscreteSpec(Observation, n).Size()
		if err != nil {
			t.Fatalf("size(%d): %v", n, err)
		}
		if size != n {
			t.Errorf("size = %d, want %d", size, n)
		}
	}
}

func TestSpecSizeErrors(t *testing.T) {
	continuous := NewSpec(mat.NewVecDense(1, nil), Observation,
		mat.NewVecDense(1, []float64{0}), mat.NewVecDense(1, []float64{1}),
		Continuous)
	if _, err := continuous.Size(); err == nil {
		t.Error("continuous spec should not have a size")
	}

	twoDim := NewSpec(mat.NewVecDense(2, nil), Action,
		mat.NewVecDense(2, nil), mat.NewVecDense(2, []float64{3, 3}),
		Discrete)
	if _, err := twoDim.Size(); err == nil {
		t.Error("2-dimensional spec should not have a size")
	}

	offset := NewSpec(mat.NewVecDense(1, nil), Action,
		mat.NewVecDense(1, []float64{1}), mat.NewVecDense(1, []float64{3}),
		Discrete)
	if _, err := offset.Size(); err == nil {
		t.Error("spec not starting at 0 should not have a size")
	}

	if _, err := NewDiscreteSpec(Action, 0).Size(); err == nil {
		t.Error("empty spec should not have a size")
	}
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := timestep.New(timestep.Mid, -1, 0, 2)
	if limit.End(&step) {
		t.Errorf("step %d should not end the episode", step.Number)
	}

	step = timestep.New(timestep.Mid, -1, 0, 3)
	if !limit.End(&step) {
		t.Fatalf("step %d should end the episode", step.Number)
	}
	if !step.Truncated() || step.Terminated() {
		t.Errorf("step limit should truncate, got end type %v",
			step.EndType())
	}
}

func TestEndersOrder(t *testing.T) {
	goal := NewFunctionEnder(func(s int) bool { return s == 5 },
		timestep.TerminalStateReached)
	enders := Enders{goal, NewStepLimit(1)}

	step := timestep.New(timestep.Mid, 0, 5, 1)
	if !enders.End(&step) {
		t.Fatal("episode should end")
	}
	if !step.Terminated() {
		t.Errorf("goal should take precedence over the step limit, got %v",
			step.EndType())
	}
}

func TestCategoricalStarter(t *testing.T) {
	states := []int{3, 17, 42}
	starter, err := NewCategoricalStarter(states, 12)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]int)
	for i := 0; i < 300; i++ {
		seen[starter.Start()]++
	}
	for s := range seen {
		if s != 3 && s != 17 && s != 42 {
			t.Errorf("sampled state %d outside of start states", s)
		}
	}
	if len(seen) != len(states) {
		t.Errorf("sampled %d distinct states, want %d", len(seen),
			len(states))
	}

	if _, err := NewCategoricalStarter(nil, 1); err == nil {
		t.Error("expected error for empty start states")
	}
}

func TestActionSampler(t *testing.T) {
	sampler := NewActionSampler(6, 1)
	counts := make([]int, 6)
	for i := 0; i < 6000; i++ {
		a := sampler.Sample()
		if a < 0 || a >= 6 {
			t.Fatalf("action %d out of range", a)
		}
		counts[a]++
	}
	for a, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("action %d sampled %d times, want about 1000", a, c)
		}
	}
}
