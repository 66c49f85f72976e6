package experiment

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/environment"
)

// DefaultReplaySteps is the number of steps a replay is cut off after
// when no limit is given
const DefaultReplaySteps = 200

// ReplayStep is a single step of a greedy replay
type ReplayStep struct {
	Number int // 1-based step number
	Action int
	Reward float64
	State  int // State reached by the step
	Last   bool
}

// ReplayObserver observes each step of a replay as it happens. If it
// returns an error, the replay stops.
type ReplayObserver func(ReplayStep) error

// Replay resets env and follows the greedy policy of p until the
// episode ends or maxSteps steps have been taken. If maxSteps <= 0,
// DefaultReplaySteps is used. observer, if not nil, is called after
// every step. The steps taken are returned.
//
// Replay does not change the agent.
func Replay(env environment.Environment, p agent.EGreedyPolicy,
	maxSteps int, observer ReplayObserver) ([]ReplayStep, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultReplaySteps
	}

	step, err := env.Reset()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	var path []ReplayStep
	for i := 0; i < maxSteps; i++ {
		action, err := p.SelectActionEpsilon(step.Observation, 0)
		if err != nil {
			return path, fmt.Errorf("replay: %w", err)
		}

		var last bool
		step, last, err = env.Step(action)
		if err != nil {
			return path, fmt.Errorf("replay: %w", err)
		}

		rs := ReplayStep{
			Number: i + 1,
			Action: action,
			Reward: step.Reward,
			State:  step.Observation,
			Last:   last,
		}
		path = append(path, rs)

		if observer != nil {
			if err := observer(rs); err != nil {
				return path, fmt.Errorf("replay: %w", err)
			}
		}
		if last {
			break
		}
	}

	return path, nil
}

// TotalReward returns the sum of the rewards of a replay
func TotalReward(path []ReplayStep) float64 {
	var total float64
	for _, step := range path {
		total += step.Reward
	}
	return total
}
