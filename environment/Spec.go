package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Reward
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	case Observation:
		return "Observation"
	default:
		return "Reward"
	}
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, or reward in an
// environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match uuper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteSpec returns a 1-dimensional discrete specification over
// the values (0, 1, 2, ... n-1)
func NewDiscreteSpec(t SpecType, n int) Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(n - 1)})

	return NewSpec(shape, t, lowerBound, upperBound, Discrete)
}

// Size returns the number of values a 1-dimensional discrete Spec
// enumerates. Values must be enumerated starting from 0.
func (s Spec) Size() (int, error) {
	if s.Cardinality != Discrete {
		return 0, fmt.Errorf("size: %v spec is not discrete", s.Type)
	}
	if s.Shape == nil || s.Shape.Len() != 1 {
		return 0, fmt.Errorf("size: %v spec must be 1-dimensional", s.Type)
	}
	if s.LowerBound.AtVec(0) != 0.0 {
		return 0, fmt.Errorf("size: %v spec must be enumerated starting "+
			"from 0", s.Type)
	}

	n := int(s.UpperBound.AtVec(0)) + 1
	if n <= 0 {
		return 0, fmt.Errorf("size: %v spec is empty", s.Type)
	}
	return n, nil
}
