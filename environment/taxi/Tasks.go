package taxi

import (
	"fmt"

	env "github.com/samuelfneumann/qtaxi/environment"
	ts "github.com/samuelfneumann/qtaxi/timestep"
)

const (
	// EpisodeSteps is the commonly used episode step limit
	EpisodeSteps int = 200

	StepReward    float64 = -1.0
	DeliverReward float64 = 20.0
	IllegalReward float64 = -10.0
)

// Deliver implements the task of delivering the passenger to their
// destination.
//
// Rewards are -1 on each timestep, +20 for dropping the passenger off
// at their destination, and -10 for illegal pickup or dropoff actions.
// Dropping the passenger off at a depot other than their destination
// leaves them at that depot.
//
// Episodes terminate when the passenger is delivered and are
// truncated after a step limit.
type Deliver struct {
	env.Starter
	env.Ender
}

// NewDeliver creates and returns a new Deliver task given a Starter,
// which determines the starting states, and the maximum number of
// episode steps. If episodeSteps <= 0, episodes are never truncated.
func NewDeliver(s env.Starter, episodeSteps int) *Deliver {
	stepEnder := env.NewStepLimit(episodeSteps)
	goalEnder := env.NewFunctionEnder(Delivered, ts.TerminalStateReached)

	return &Deliver{
		Starter: s,
		Ender:   env.Enders{goalEnder, stepEnder},
	}
}

// Delivered returns whether the passenger is at their destination in
// state
func Delivered(state int) bool {
	_, _, passenger, destination := Decode(state)
	return passenger == destination
}

// GetReward returns the reward for taking action in state and
// transitioning to nextState
func (d *Deliver) GetReward(state, action, nextState int) float64 {
	switch action {
	case Pickup:
		if state == nextState {
			return IllegalReward
		}

	case Dropoff:
		if state == nextState {
			return IllegalReward
		}
		if Delivered(nextState) {
			return DeliverReward
		}
	}
	return StepReward
}

// StartStates returns every valid starting state: the passenger waits
// at a depot and wants to go to a different depot. The taxi may be
// anywhere.
func StartStates() []int {
	states := make([]int, 0, Rows*Cols*len(Depots)*(len(Depots)-1))
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			for passenger := range Depots {
				for destination := range Depots {
					if passenger == destination {
						continue
					}
					states = append(states, Encode(row, col, passenger,
						destination))
				}
			}
		}
	}
	return states
}

// NewStarter returns a Starter which samples uniformly from
// StartStates
func NewStarter(seed uint64) (env.Starter, error) {
	starter, err := env.NewCategoricalStarter(StartStates(), seed)
	if err != nil {
		return nil, fmt.Errorf("newStarter: %v", err)
	}
	return starter, nil
}

// NewStart returns a Starter which always starts with the taxi at
// (row, col), the passenger at depot passenger, and the destination
// depot destination
func NewStart(row, col, passenger, destination int) (env.Starter, error) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return nil, fmt.Errorf("newStart: taxi position (%d, %d) outside "+
			"of the %dx%d grid", row, col, Rows, Cols)
	}
	if passenger < 0 || passenger >= len(Depots) {
		return nil, fmt.Errorf("newStart: passenger depot %d not in [0, %d)",
			passenger, len(Depots))
	}
	if destination < 0 || destination >= len(Depots) {
		return nil, fmt.Errorf("newStart: destination depot %d not in "+
			"[0, %d)", destination, len(Depots))
	}
	if passenger == destination {
		return nil, fmt.Errorf("newStart: passenger and destination "+
			"cannot both be depot %v", depotNames[passenger])
	}

	return env.NewSingleStarter(Encode(row, col, passenger, destination)), nil
}

// DepotIndex returns the index into Depots of the depot named name,
// one of "R", "G", "Y", or "B"
func DepotIndex(name string) (int, error) {
	for i, n := range depotNames {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("depotIndex: unknown depot %q", name)
}

// DepotName returns the name of the depot at index i into Depots
func DepotName(i int) string {
	if i < 0 || i >= len(depotNames) {
		return "Taxi"
	}
	return depotNames[i]
}
