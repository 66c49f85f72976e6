// Package taxi implements the Taxi environment.
//
// In Taxi, the agent drives a taxi around a 5x5 grid with walls. A
// passenger waits at one of four depots R, G, Y, and B and wants to be
// driven to one of the other depots. The agent must navigate to the
// passenger, pick them up, drive to the destination, and drop them off.
//
//	+---------+
//	|R: | : :G|
//	| : | : : |
//	| : : : : |
//	| | : | : |
//	|Y| : |B: |
//	+---------+
//
// States are discrete and encode the taxi row, taxi column, passenger
// location, and destination as
//
//	((row * 5 + col) * 5 + passenger) * 4 + destination
//
// where a passenger location of 4 means the passenger is in the taxi.
// There are 500 states in total.
//
// Actions are discrete:
//
//	Action	Meaning
//	  0		Move south
//	  1		Move north
//	  2		Move east
//	  3		Move west
//	  4		Pick up the passenger
//	  5		Drop off the passenger
//
// Moving into a wall or off the grid leaves the taxi in place.
package taxi

import (
	"fmt"
	"io"
	"os"

	env "github.com/samuelfneumann/qtaxi/environment"
	ts "github.com/samuelfneumann/qtaxi/timestep"
)

const (
	Rows int = 5
	Cols int = 5

	// InTaxi is the passenger location when the passenger is riding in
	// the taxi
	InTaxi int = 4

	NumStates  int = Rows * Cols * (len(depotNames) + 1) * len(depotNames)
	NumActions int = 6
)

// Actions
const (
	South int = iota
	North
	East
	West
	Pickup
	Dropoff
)

// ActionNames holds the human readable name of each action
var ActionNames = [NumActions]string{
	"South", "North", "East", "West", "Pickup", "Dropoff",
}

// Location is a (row, column) cell on the grid
type Location struct {
	Row, Col int
}

// Depots are the locations of the R, G, Y, and B depots, in that
// order. Passenger locations and destinations index into Depots.
var Depots = [4]Location{{0, 0}, {0, 4}, {4, 0}, {4, 3}}

var depotNames = [4]string{"R", "G", "Y", "B"}

// desc is the map of the grid. A ':' between two cells means the taxi
// can drive between them, a '|' is a wall.
var desc = []string{
	"+---------+",
	"|R: | : :G|",
	"| : | : : |",
	"| : : : : |",
	"| | : | : |",
	"|Y| : |B: |",
	"+---------+",
}

// Encode encodes the taxi position, passenger location, and destination
// as a discrete state
func Encode(row, col, passenger, destination int) int {
	return ((row*Cols+col)*(InTaxi+1)+passenger)*len(Depots) + destination
}

// Decode decodes a discrete state into the taxi position, passenger
// location, and destination
func Decode(state int) (row, col, passenger, destination int) {
	destination = state % len(Depots)
	state /= len(Depots)
	passenger = state % (InTaxi + 1)
	state /= InTaxi + 1
	col = state % Cols
	row = state / Cols
	return
}

// ValidState returns an error if state is not a state of the
// environment
func ValidState(state int) error {
	if state < 0 || state >= NumStates {
		return fmt.Errorf("state %d not in [0, %d)", state, NumStates)
	}
	return nil
}

// Taxi implements the Taxi environment. The Task determines the
// starting states, the rewards, and when episodes end.
//
// Taxi implements the environment.Environment and environment.Renderer
// interfaces
type Taxi struct {
	env.Task
	sampler *env.ActionSampler

	state       int
	lastAction  int
	currentStep ts.TimeStep

	out     io.Writer // Render output
	noColor bool
}

// New creates a new Taxi environment with the argument task. The
// environment is reset and the first TimeStep of the episode returned.
func New(t env.Task, seed uint64) (*Taxi, ts.TimeStep, error) {
	if t == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: task cannot be nil")
	}

	taxi := &Taxi{
		Task:       t,
		sampler:    env.NewActionSampler(NumActions, seed),
		lastAction: -1,
		out:        os.Stdout,
	}

	step, err := taxi.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return taxi, step, nil
}

// Reset resets the environment to a starting state drawn from the Task
// and returns the first TimeStep of the new episode
func (t *Taxi) Reset() (ts.TimeStep, error) {
	start := t.Start()
	if err := ValidState(start); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: illegal starting state: %v",
			err)
	}

	t.state = start
	t.lastAction = -1
	t.currentStep = ts.New(ts.First, 0, start, 0)

	return t.currentStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and a bool indicating whether or not the episode has ended.
func (t *Taxi) Step(action int) (ts.TimeStep, bool, error) {
	if t.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"call Reset")
	}
	if action < 0 || action >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d "+
			"not in [0, %d)", action, NumActions)
	}

	nextState := NextState(t.state, action)
	reward := t.GetReward(t.state, action, nextState)

	nextStep := ts.New(ts.Mid, reward, nextState, t.currentStep.Number+1)
	last := t.End(&nextStep)

	t.state = nextState
	t.lastAction = action
	t.currentStep = nextStep

	return nextStep, last, nil
}

// NextState returns the state reached by taking action in state. Taxi
// dynamics are deterministic.
func NextState(state, action int) int {
	row, col, passenger, destination := Decode(state)
	taxiLoc := Location{row, col}

	switch action {
	case South:
		row = min(row+1, Rows-1)

	case North:
		row = max(row-1, 0)

	case East:
		if desc[1+row][2*col+2] == ':' {
			col = min(col+1, Cols-1)
		}

	case West:
		if desc[1+row][2*col] == ':' {
			col = max(col-1, 0)
		}

	case Pickup:
		if passenger < InTaxi && taxiLoc == Depots[passenger] {
			passenger = InTaxi
		}

	case Dropoff:
		if passenger == InTaxi {
			if depot := depotAt(taxiLoc); depot >= 0 {
				passenger = depot
			}
		}
	}

	return Encode(row, col, passenger, destination)
}

// depotAt returns the index of the depot at loc, or -1 if there is no
// depot at loc
func depotAt(loc Location) int {
	for i, depot := range Depots {
		if depot == loc {
			return i
		}
	}
	return -1
}

// SampleAction samples an action uniformly at random
func (t *Taxi) SampleAction() int {
	return t.sampler.Sample()
}

// State returns the current state of the environment
func (t *Taxi) State() int {
	return t.state
}

// SetOutput sets the writer that Render writes to. By default this is
// os.Stdout.
func (t *Taxi) SetOutput(w io.Writer) {
	t.out = w
}

// SetColor enables or disables ANSI colours in the output of Render
func (t *Taxi) SetColor(enabled bool) {
	t.noColor = !enabled
}

// ObservationSpec returns the observation specification of the
// environment
func (t *Taxi) ObservationSpec() env.Spec {
	return env.NewDiscreteSpec(env.Observation, NumStates)
}

// ActionSpec returns the action specification of the environment
func (t *Taxi) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, NumActions)
}

func (t *Taxi) String() string {
	row, col, passenger, destination := Decode(t.state)
	pass := "Taxi"
	if passenger < InTaxi {
		pass = depotNames[passenger]
	}
	return fmt.Sprintf("Taxi | At: (%d, %d)  |  Passenger: %v  |  "+
		"Destination: %v", row, col, pass, depotNames[destination])
}
