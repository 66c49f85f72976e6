package agent

import "errors"

// Errors returned when an agent is used with arguments outside of the
// environment it was created for. They are wrapped with context, so
// compare using errors.Is.
var (
	ErrInvalidState   = errors.New("invalid state")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidEpsilon = errors.New("epsilon must be in [0, 1]")
	ErrDims           = errors.New("mismatched table dimensions")
)
