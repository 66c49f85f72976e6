package maze

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/timestep"
)

// Rewards of the Solve task
const (
	TimeStepReward float64 = -1.0
	TerminalReward float64 = 0.0
)

// Solve is the task of reaching the goal cell of a maze. Every step
// yields TimeStepReward except the step onto the goal, which yields
// TerminalReward and ends the episode. Episodes are truncated after a
// step limit.
type Solve struct {
	environment.Starter
	environment.Ender

	goal int
}

// NewSolve returns a new Solve task for a maze with the given number
// of rows and columns whose goal is the bottom right cell. Episodes
// start in the states drawn from s and are cut off after episodeSteps
// steps.
func NewSolve(s environment.Starter, rows, cols,
	episodeSteps int) (*Solve, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("newSolve: maze must have positive "+
			"dimensions, got (%d, %d)", rows, cols)
	}

	task := &Solve{
		Starter: s,
		goal:    rows*cols - 1,
	}
	task.Ender = environment.Enders{
		environment.NewFunctionEnder(task.AtGoal,
			timestep.TerminalStateReached),
		environment.NewStepLimit(episodeSteps),
	}
	return task, nil
}

// GetReward returns the reward for moving from state to nextState
func (s *Solve) GetReward(_, _, nextState int) float64 {
	if s.AtGoal(nextState) {
		return TerminalReward
	}
	return TimeStepReward
}

// AtGoal returns whether state is the goal cell
func (s *Solve) AtGoal(state int) bool {
	return state == s.goal
}

func (s *Solve) String() string {
	return fmt.Sprintf("Solve(goal: %d)", s.goal)
}
