package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/samuelfneumann/qtaxi/agent"
	"gonum.org/v1/gonum/mat"
)

// constSampler always samples the same action
type constSampler int

func (c constSampler) SampleAction() int { return int(c) }

func TestEGreedyGreedyTieBreak(t *testing.T) {
	weights := mat.NewDense(2, 3, []float64{
		1, 5, 5,
		0, 0, 0,
	})
	p, err := NewEGreedy(weights, constSampler(0), 1)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGreedy(p)

	tests := []struct {
		state, want int
	}{
		{0, 1},
		{1, 0},
	}
	for _, test := range tests {
		for i := 0; i < 10; i++ {
			got, err := g.SelectAction(test.state)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("state %d: got action %d, want %d", test.state, got,
					test.want)
			}
		}
	}
}

func TestEGreedyExplores(t *testing.T) {
	weights := mat.NewDense(1, 3, []float64{0, 0, 9})
	p, err := NewEGreedy(weights, constSampler(1), 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		a, err := p.SelectAction(0, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		if a != 1 {
			t.Fatalf("epsilon 1 should always sample, got action %d", a)
		}
	}
}

func TestEGreedySharesWeights(t *testing.T) {
	weights := mat.NewDense(1, 2, nil)
	p, _ := NewEGreedy(weights, constSampler(0), 0)
	g := NewGreedy(p)

	weights.Set(0, 1, 3)
	if a, _ := g.SelectAction(0); a != 1 {
		t.Errorf("greedy policy did not see table update: action %d", a)
	}
}

func TestEGreedyErrors(t *testing.T) {
	weights := mat.NewDense(2, 2, nil)
	p, _ := NewEGreedy(weights, constSampler(0), 0)

	if _, err := p.SelectAction(2, 0.1); !errors.Is(err, agent.ErrInvalidState) {
		t.Errorf("state 2: got error %v, want ErrInvalidState", err)
	}
	if _, err := p.SelectAction(-1, 0.1); !errors.Is(err, agent.ErrInvalidState) {
		t.Errorf("state -1: got error %v, want ErrInvalidState", err)
	}
	if _, err := p.SelectAction(0, 1.5); !errors.Is(err, agent.ErrInvalidEpsilon) {
		t.Errorf("epsilon 1.5: got error %v, want ErrInvalidEpsilon", err)
	}

	bad := map[string]*mat.Dense{WeightsKey: mat.NewDense(3, 2, nil)}
	if err := p.SetWeights(bad); !errors.Is(err, agent.ErrDims) {
		t.Errorf("setWeights: got error %v, want ErrDims", err)
	}
}

func TestEGreedySetWeightsNil(t *testing.T) {
	p, _ := NewEGreedy(mat.NewDense(2, 2, nil), constSampler(0), 0)

	if err := p.SetWeights(map[string]*mat.Dense{WeightsKey: nil}); err == nil {
		t.Error("setting nil weights should fail")
	}
	if err := p.SetWeights(map[string]*mat.Dense{}); err == nil {
		t.Error("setting missing weights should fail")
	}
}

func TestEGreedySetWeightsCopies(t *testing.T) {
	weights := mat.NewDense(1, 2, nil)
	p, _ := NewEGreedy(weights, constSampler(0), 0)
	g := NewGreedy(p)

	next := mat.NewDense(1, 2, []float64{0, 1})
	if err := p.SetWeights(map[string]*mat.Dense{WeightsKey: next}); err != nil {
		t.Fatal(err)
	}
	if a, _ := g.SelectAction(0); a != 1 {
		t.Errorf("greedy policy did not see new weights: action %d", a)
	}

	// Later changes to the argument table are not seen
	next.Set(0, 0, 5)
	if a, _ := p.SelectAction(0, 0); a != 1 {
		t.Errorf("policy aliases the argument table: action %d", a)
	}
	if weights.At(0, 1) != 1 {
		t.Error("weights were not copied into the policy's table")
	}
}

func TestEGreedyNaNEpsilon(t *testing.T) {
	p, _ := NewEGreedy(mat.NewDense(1, 2, nil), constSampler(0), 0)
	if _, err := p.SelectAction(0, math.NaN()); !errors.Is(err, agent.ErrInvalidEpsilon) {
		t.Errorf("got error %v, want ErrInvalidEpsilon", err)
	}
}
