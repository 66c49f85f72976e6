package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/timestep"
)

// Goal represents the task of reaching goal states in a GridWorld.
//
// Each step yields timeStepReward, except for a step into a goal cell,
// which yields goalReward and ends the episode. Episodes are truncated
// after a step limit.
type Goal struct {
	environment.Starter
	environment.Ender

	goals          map[int]bool
	r, c           int // total rows and columns in environment
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new goal task with goals at positions
// (x[i], y[i]), given that the gridworld has r rows and c columns.
// Starting states are drawn from s and episodes are cut off after
// episodeSteps steps.
func NewGoal(s environment.Starter, x, y []int, r, c int, tr, gr float64,
	episodeSteps int) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("newGoal: at least one goal is required")
	}

	goals := make(map[int]bool, len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("newGoal: x[%d] = %d not in [0, %d)", i,
				x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newGoal: y[%d] = %d not in [0, %d)", i,
				y[i], r)
		}
		goals[cToInd(x[i], y[i], c)] = true
	}

	g := &Goal{
		Starter:        s,
		goals:          goals,
		r:              r,
		c:              c,
		timeStepReward: tr,
		goalReward:     gr,
	}
	g.Ender = environment.Enders{
		environment.NewFunctionEnder(g.AtGoal, timestep.TerminalStateReached),
		environment.NewStepLimit(episodeSteps),
	}

	return g, nil
}

// GetReward returns the reward for moving from state to nextState
func (g *Goal) GetReward(_, _, nextState int) float64 {
	if g.AtGoal(nextState) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is a goal state
func (g *Goal) AtGoal(state int) bool {
	return g.goals[state]
}

func (g *Goal) String() string {
	return fmt.Sprintf("Goal%v", g.goalCoordinates())
}

// goalCoordinates returns the (x, y) coordinates of the goals in
// increasing order of state
func (g *Goal) goalCoordinates() [][2]int {
	var coords [][2]int
	for i := 0; i < g.r*g.c; i++ {
		if g.goals[i] {
			x, y := indToC(i, g.c)
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}
