package policy

import (
	"gonum.org/v1/gonum/mat"
)

// Greedy is a greedy policy over a table of action values. It shares
// its table with the EGreedy policy it was created from, so updates to
// one are seen by the other.
type Greedy struct {
	*EGreedy
}

// NewGreedy returns the greedy counterpart of an EGreedy policy
func NewGreedy(p *EGreedy) *Greedy {
	return &Greedy{p}
}

// SelectAction selects the greedy action in state
func (g *Greedy) SelectAction(state int) (int, error) {
	return g.EGreedy.SelectAction(state, 0.0)
}

// Weights returns the shared table
func (g *Greedy) Weights() map[string]*mat.Dense {
	return g.EGreedy.Weights()
}
