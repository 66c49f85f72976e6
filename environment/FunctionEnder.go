package environment

import (
	"github.com/samuelfneumann/qtaxi/timestep"
)

// FunctionEnder ends an episode whenever a function of the current
// state returns true.
type FunctionEnder struct {
	end     func(state int) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(int) bool, endType timestep.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode temrination. If the episode
// should be ended, End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type.
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if f.end(t.Observation) {
		t.StepType = timestep.Last
		t.SetEnd(f.endType)
		return true
	}
	return false
}

// Enders combines multiple Enders. The first Ender to end the episode
// determines the EndType, so terminal conditions should come before
// step limits.
type Enders []Ender

// End calls each Ender in turn until one ends the episode
func (e Enders) End(t *timestep.TimeStep) bool {
	for _, ender := range e {
		if ender.End(t) {
			return true
		}
	}
	return false
}
