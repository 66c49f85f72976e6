// Package policy implements policies over a table of action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

const (
	// Keys for weights map: map[string]*mat.Dense
	WeightsKey string = "weights"
)

// Sampler samples a uniformly random action. Environments satisfy
// Sampler through their SampleAction method.
type Sampler interface {
	SampleAction() int
}

// EGreedy implements an ε-greedy policy over a table of action values
// with one row per state and one column per action.
//
// With probability ε the action is taken from the Sampler, otherwise
// the action with the highest value in the state is chosen. Ties are
// broken in favour of the lowest action index.
type EGreedy struct {
	weights *mat.Dense
	sampler Sampler
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy which selects actions
// using the table weights. Exploratory actions are drawn from sampler.
func NewEGreedy(weights *mat.Dense, sampler Sampler,
	seed uint64) (*EGreedy, error) {
	if weights == nil {
		return nil, fmt.Errorf("newEGreedy: weights cannot be nil")
	}
	if sampler == nil {
		return nil, fmt.Errorf("newEGreedy: sampler cannot be nil")
	}

	return &EGreedy{
		weights: weights,
		sampler: sampler,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectAction selects an action in state from the ε-greedy policy
func (p *EGreedy) SelectAction(state int, epsilon float64) (int, error) {
	if !(epsilon >= 0 && epsilon <= 1) {
		return -1, fmt.Errorf("selectAction: %w: got %v",
			agent.ErrInvalidEpsilon, epsilon)
	}
	if err := p.checkState(state); err != nil {
		return -1, err
	}

	if epsilon > 0 && p.rng.Float64() < epsilon {
		return p.sampler.SampleAction(), nil
	}
	return matutils.MaxVec(p.weights.RowView(state)), nil
}

// checkState returns an error if state does not index a row of the
// table
func (p *EGreedy) checkState(state int) error {
	rows, _ := p.weights.Dims()
	if state < 0 || state >= rows {
		return fmt.Errorf("selectAction: %w: %d not in [0, %d)",
			agent.ErrInvalidState, state, rows)
	}
	return nil
}

// Weights gets and returns the weights of the EGreedy policy as a
// string description -> weights. The table is returned without being
// copied, so changes to it change the policy.
func (p *EGreedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.weights

	return weights
}

// SetWeights copies a new set of weights into the table of the policy.
// The SetWeights function can take the output of a call to Weights()
// on another EGreedy Policy directly. The new table must have the same
// dimensions as the current one. The argument table is not retained,
// and every policy sharing the table sees the new weights.
func (p *EGreedy) SetWeights(weights map[string]*mat.Dense) error {
	newWeights, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named \"%v\"", WeightsKey)
	}
	if newWeights == nil {
		return fmt.Errorf("setWeights: weights cannot be nil")
	}

	r, c := p.weights.Dims()
	newR, newC := newWeights.Dims()
	if r != newR || c != newC {
		return fmt.Errorf("setWeights: %w: have %s, got %s", agent.ErrDims,
			matutils.Shape(p.weights), matutils.Shape(newWeights))
	}

	p.weights.Copy(newWeights)
	return nil
}
