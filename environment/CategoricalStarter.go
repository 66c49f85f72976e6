package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled uniformly from a
// fixed set of states
type CategoricalStarter struct {
	states []int
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter, sampling
// uniformly from states
func NewCategoricalStarter(states []int, seed uint64) (*CategoricalStarter,
	error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: no starting states")
	}
	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	s := make([]int, len(states))
	copy(s, states)

	return &CategoricalStarter{
		states: s,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() int {
	return c.states[int(c.rand.Rand())]
}

// SingleStarter always starts in the same state
type SingleStarter struct {
	state int
}

// NewSingleStarter returns a Starter that always returns state
func NewSingleStarter(state int) SingleStarter {
	return SingleStarter{state}
}

// Start returns the starting state
func (s SingleStarter) Start() int {
	return s.state
}

// ActionSampler samples actions uniformly from (0, 1, 2, ... N-1)
type ActionSampler struct {
	rand distuv.Categorical
}

// NewActionSampler returns a uniform sampler over n actions
func NewActionSampler(n int, seed uint64) *ActionSampler {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return &ActionSampler{distuv.NewCategorical(weights, rand.NewSource(seed))}
}

// Sample returns a uniformly sampled action
func (a *ActionSampler) Sample() int {
	return int(a.rand.Rand())
}
