package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/environment"
)

// NewSingleStart returns a Starter which always starts in cell (x, y)
// of a gridworld with r rows and c columns
func NewSingleStart(x, y, r, c int) (environment.Starter, error) {
	if x < 0 || x >= c {
		return nil, fmt.Errorf("newSingleStart: x = %d not in [0, %d)", x, c)
	} else if y < 0 || y >= r {
		return nil, fmt.Errorf("newSingleStart: y = %d not in [0, %d)", y, r)
	}

	return environment.NewSingleStarter(cToInd(x, y, c)), nil
}

// NewCategoricalStart returns a Starter which starts uniformly at
// random in one of the cells (x[i], y[i])
func NewCategoricalStart(x, y []int, r, c int,
	seed uint64) (environment.Starter, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newCategoricalStart: x length (%d) != y "+
			"length (%d)", len(x), len(y))
	}

	states := make([]int, len(x))
	for i := range x {
		if x[i] < 0 || x[i] >= c || y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newCategoricalStart: (%d, %d) outside "+
				"of the grid", x[i], y[i])
		}
		states[i] = cToInd(x[i], y[i], c)
	}

	starter, err := environment.NewCategoricalStarter(states, seed)
	if err != nil {
		return nil, fmt.Errorf("newCategoricalStart: %v", err)
	}
	return starter, nil
}
