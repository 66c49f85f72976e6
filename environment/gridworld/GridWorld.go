// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/timestep"
)

// Actions
const (
	Left int = iota
	Right
	Up
	Down

	NumActions int = 4
)

// GridWorld represents a gridworld environment
//
// The agent moves between the cells of an r x c grid. States are the
// index y*c + x of the cell (x, y) the agent is in. Actions move the
// agent one cell left, right, up (y+1), or down (y-1). Moving off the
// grid leaves the agent in place.
//
// GridWorld implements the environment.Environment interface
type GridWorld struct {
	environment.Task
	sampler *environment.ActionSampler

	r, c        int
	position    int
	currentStep timestep.TimeStep
}

// New creates a new gridworld with r rows and c columns and task t.
// The environment is reset and the first TimeStep returned.
func New(r, c int, t environment.Task, seed uint64) (*GridWorld,
	timestep.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: grid must have "+
			"positive dimensions, got (%d, %d)", r, c)
	}

	g := &GridWorld{
		Task:    t,
		sampler: environment.NewActionSampler(NumActions, seed),
		r:       r,
		c:       c,
	}

	step, err := g.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return g, step, nil
}

// Reset resets the environment to a starting state and returns the
// first TimeStep of the episode
func (g *GridWorld) Reset() (timestep.TimeStep, error) {
	start := g.Start()
	if start < 0 || start >= g.r*g.c {
		return timestep.TimeStep{}, fmt.Errorf("reset: illegal starting "+
			"state %d", start)
	}

	g.position = start
	g.currentStep = timestep.New(timestep.First, 0, start, 0)
	return g.currentStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the episode has ended
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool, error) {
	if g.currentStep.Last() {
		return timestep.TimeStep{}, true, fmt.Errorf("step: episode has " +
			"ended, call Reset")
	}
	if action < 0 || action >= NumActions {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %d not in [0, %d)", action, NumActions)
	}

	next := g.nextPosition(action)
	reward := g.GetReward(g.position, action, next)

	step := timestep.New(timestep.Mid, reward, next, g.currentStep.Number+1)
	last := g.End(&step)

	g.position = next
	g.currentStep = step

	return step, last, nil
}

// nextPosition returns the position reached by taking action from the
// current position
func (g *GridWorld) nextPosition(action int) int {
	x, y := g.Coordinates()

	switch action {
	case Left:
		x = max(x-1, 0)

	case Right:
		x = min(x+1, g.c-1)

	case Up:
		y = min(y+1, g.r-1)

	case Down:
		y = max(y-1, 0)
	}

	return cToInd(x, y, g.c)
}

// SampleAction samples an action uniformly at random
func (g *GridWorld) SampleAction() int {
	return g.sampler.Sample()
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Observation, g.r*g.c)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Action, NumActions)
}

// Coordinates returns the (x, y) coordinates of the agent
func (g *GridWorld) Coordinates() (int, int) {
	return indToC(g.position, g.c)
}

func (g *GridWorld) String() string {
	x, y := g.Coordinates()
	str := "GridWorld | At: (%d, %d)  |   Task: %v  |  Bounds: (%d, %d)"

	return fmt.Sprintf(str, x, y, g.Task, g.r, g.c)
}

func cToInd(x, y, c int) int {
	return y*c + x
}

func indToC(ind, c int) (x, y int) {
	y = ind / c
	x = ind - (y * c)
	return x, y
}
