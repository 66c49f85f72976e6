// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	"github.com/samuelfneumann/qtaxi/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() int
}

// Ender determines when an episode ends. If End returns true, the
// argument TimeStep is modified so that its StepType is timestep.Last
// and its EndType records why the episode ended.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState int) float64
}

// Environment implements a simulated environment with discrete states
// and discrete actions.
//
// The Environment tracks its own current state. Calling Step applies an
// action in that state. The returned boolean reports whether the
// returned TimeStep is the last in the episode, either because a
// terminal state was reached or because the episode was truncated.
// TimeStep.EndType distinguishes the two.
type Environment interface {
	Reset() (timestep.TimeStep, error)
	Step(action int) (timestep.TimeStep, bool, error)

	// SampleAction samples an action uniformly from the action space
	SampleAction() int

	ObservationSpec() Spec
	ActionSpec() Spec
}

// Renderer is an Environment that can display its current state
type Renderer interface {
	Render() error
}

// NumStates returns the number of discrete states of an Environment
func NumStates(e Environment) (int, error) {
	return e.ObservationSpec().Size()
}

// NumActions returns the number of discrete actions of an Environment
func NumActions(e Environment) (int, error) {
	return e.ActionSpec().Size()
}
