// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only Last timesteps carry an
// EndType other than Unset.
type EndType int

const (
	// Unset means the episode has not ended on this timestep
	Unset EndType = iota

	// TerminalStateReached means the task reached a true terminal
	// condition, so no value should be bootstrapped past this step
	TerminalStateReached

	// Timeout means an external limit cut the episode short. The
	// environment state is not terminal.
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unset"
	}
}

// TimeStep packages together a single timestep in an environment.
// Observations are discrete state indices.
type TimeStep struct {
	StepType
	Reward      float64
	Observation int
	Number      int
	end         EndType
}

// New returns a new TimeStep
func New(t StepType, r float64, o int, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records why the episode ended on this timestep
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// EndType returns why the episode ended on this timestep
func (t *TimeStep) EndType() EndType {
	return t.end
}

// Terminated returns whether the episode reached a terminal state on
// this timestep
func (t *TimeStep) Terminated() bool {
	return t.Last() && t.end == TerminalStateReached
}

// Truncated returns whether the episode was cut off on this timestep
// without reaching a terminal state
func (t *TimeStep) Truncated() bool {
	return t.Last() && t.end != TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  State: %d  |  " +
		"Step Number:  %v"
	if t.Last() {
		str += "  |  End: " + t.end.String()
	}

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Observation, t.Number)
}

// Transition is a single (s, a, r, s', terminated) tuple. Transitions
// are consumed by an update and then forgotten.
type Transition struct {
	State      int
	Action     int
	Reward     float64
	NextState  int
	Terminated bool
}

// NewTransition builds the Transition of taking action in step and
// observing next
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:      step.Observation,
		Action:     action,
		Reward:     next.Reward,
		NextState:  next.Observation,
		Terminated: next.Terminated(),
	}
}
