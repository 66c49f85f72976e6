// Package qlearning implements the tabular Q-Learning algorithm.
//
// The agent keeps one action value per (state, action) pair in a
// dense table, behaves ε-greedily with respect to that table, and
// learns with the one-step Q-Learning update:
//
//	Q(s, a) ← Q(s, a) + α[r + γ max_a' Q(s', a') - Q(s, a)]
//
// where the bootstrap term is dropped when s' is terminal. ε decays
// geometrically once per training episode.
//
// A QLearning agent is not safe for concurrent use.
package qlearning

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/agent/tabular/policy"
	"github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/timestep"
	"github.com/samuelfneumann/qtaxi/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ProgressInterval is the number of episodes between calls to the
// training progress callback. The callback receives the average return
// of the last ProgressInterval episodes.
const ProgressInterval = 100

// QLearning implements the tabular Q-Learning algorithm
type QLearning struct {
	env       environment.Environment
	behaviour *policy.EGreedy
	target    *policy.Greedy
	weights   *mat.Dense

	config  Config
	epsilon float64
}

// New creates a new QLearning agent with a zero-initialized value
// table sized by the observation and action specs of env
func New(env environment.Environment, c Config,
	seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	states, err := environment.NumStates(env)
	if err != nil {
		return nil, fmt.Errorf("new: observation spec: %v", err)
	}
	actions, err := environment.NumActions(env)
	if err != nil {
		return nil, fmt.Errorf("new: action spec: %v", err)
	}

	// Rows = states, cols = actions
	weights := mat.NewDense(states, actions, nil)

	behaviour, err := policy.NewEGreedy(weights, env, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	target := policy.NewGreedy(behaviour) // Share weights

	return &QLearning{
		env:       env,
		behaviour: behaviour,
		target:    target,
		weights:   weights,
		config:    c,
		epsilon:   c.EpsilonStart,
	}, nil
}

// SelectAction selects an action in state using the current ε
func (q *QLearning) SelectAction(state int) (int, error) {
	return q.behaviour.SelectAction(state, q.epsilon)
}

// SelectActionEpsilon selects an action in state acting ε-greedily
// with the given epsilon instead of the agent's current one. An
// epsilon of 0 selects the greedy action.
func (q *QLearning) SelectActionEpsilon(state int,
	epsilon float64) (int, error) {
	return q.behaviour.SelectAction(state, epsilon)
}

// Update performs one Q-Learning update using the transition t
func (q *QLearning) Update(t timestep.Transition) error {
	states, actions := q.weights.Dims()
	if t.State < 0 || t.State >= states {
		return fmt.Errorf("update: %w: state %d not in [0, %d)",
			agent.ErrInvalidState, t.State, states)
	}
	if t.NextState < 0 || t.NextState >= states {
		return fmt.Errorf("update: %w: next state %d not in [0, %d)",
			agent.ErrInvalidState, t.NextState, states)
	}
	if t.Action < 0 || t.Action >= actions {
		return fmt.Errorf("update: %w: action %d not in [0, %d)",
			agent.ErrInvalidAction, t.Action, actions)
	}

	target := t.Reward
	if !t.Terminated {
		maxVal := floatutils.MaxPropagate(q.weights.RawRowView(t.NextState))
		target += q.config.Discount * maxVal
	}

	currentEstimate := q.weights.At(t.State, t.Action)
	newEstimate := currentEstimate +
		q.config.LearningRate*(target-currentEstimate)
	q.weights.Set(t.State, t.Action, newEstimate)

	return nil
}

// Train trains the agent online for a number of episodes, each of which
// is cut off after maxSteps steps if the environment has not already
// ended it. The return of each episode is returned, in order.
//
// If progress is not nil, it is called every ProgressInterval episodes.
func (q *QLearning) Train(episodes, maxSteps int,
	progress agent.ProgressFunc) ([]float64, error) {
	return q.TrainContext(context.Background(), episodes, maxSteps, progress)
}

// TrainContext is like Train, but stops before starting a new episode
// once ctx is done. In that case the returns of the completed episodes
// are returned together with ctx.Err().
func (q *QLearning) TrainContext(ctx context.Context, episodes,
	maxSteps int, progress agent.ProgressFunc) ([]float64, error) {
	if episodes < 0 {
		return nil, fmt.Errorf("train: episodes must be non-negative, "+
			"got %d", episodes)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("train: max steps must be positive, got %d",
			maxSteps)
	}

	history := make([]float64, 0, episodes)
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		episodeReturn, err := q.trainEpisode(maxSteps)
		if err != nil {
			return history, fmt.Errorf("train: episode %d: %w", i, err)
		}

		q.decayEpsilon()
		history = append(history, episodeReturn)

		if progress != nil && (i+1)%ProgressInterval == 0 {
			recent := history[len(history)-ProgressInterval:]
			progress(i+1, episodes, stat.Mean(recent, nil))
		}
	}

	return history, nil
}

// trainEpisode runs a single episode of online learning and returns
// the total reward accumulated
func (q *QLearning) trainEpisode(maxSteps int) (float64, error) {
	step, err := q.env.Reset()
	if err != nil {
		return 0, fmt.Errorf("reset: %w", err)
	}

	var episodeReturn float64
	for j := 0; j < maxSteps; j++ {
		action, err := q.SelectAction(step.Observation)
		if err != nil {
			return episodeReturn, err
		}

		nextStep, last, err := q.env.Step(action)
		if err != nil {
			return episodeReturn, fmt.Errorf("step: %w", err)
		}

		transition := timestep.NewTransition(step, action, nextStep)
		if err := q.Update(transition); err != nil {
			return episodeReturn, err
		}

		episodeReturn += nextStep.Reward
		step = nextStep
		if last {
			break
		}
	}

	return episodeReturn, nil
}

// decayEpsilon decays ε once, never dropping below the configured floor
func (q *QLearning) decayEpsilon() {
	q.epsilon = floatutils.Max(q.config.EpsilonEnd,
		q.epsilon*q.config.EpsilonDecay)
}

// Evaluate runs a number of episodes acting greedily and returns the
// average episodic return. Episodes run until the environment ends
// them. Neither the value table nor ε are changed.
//
// If render is true and the environment implements
// environment.Renderer, the environment is rendered after every step.
func (q *QLearning) Evaluate(episodes int, render bool) (float64, error) {
	if episodes <= 0 {
		return 0, fmt.Errorf("evaluate: episodes must be positive, got %d",
			episodes)
	}

	renderer, canRender := q.env.(environment.Renderer)
	render = render && canRender

	returns := make([]float64, episodes)
	for i := range returns {
		step, err := q.env.Reset()
		if err != nil {
			return 0, fmt.Errorf("evaluate: reset: %w", err)
		}

		for last := false; !last; {
			action, err := q.target.SelectAction(step.Observation)
			if err != nil {
				return 0, fmt.Errorf("evaluate: %w", err)
			}

			step, last, err = q.env.Step(action)
			if err != nil {
				return 0, fmt.Errorf("evaluate: step: %w", err)
			}
			returns[i] += step.Reward

			if render {
				if err := renderer.Render(); err != nil {
					return 0, fmt.Errorf("evaluate: render: %w", err)
				}
			}
		}
	}

	return stat.Mean(returns, nil), nil
}

// Epsilon returns the current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.epsilon
}

// Config returns the hyperparameters of the agent
func (q *QLearning) Config() Config {
	return q.config
}

// Dims returns the number of states and actions of the value table
func (q *QLearning) Dims() (states, actions int) {
	return q.weights.Dims()
}

// Value returns the action value of action in state
func (q *QLearning) Value(state, action int) (float64, error) {
	states, actions := q.weights.Dims()
	if state < 0 || state >= states {
		return 0, fmt.Errorf("value: %w: %d", agent.ErrInvalidState, state)
	}
	if action < 0 || action >= actions {
		return 0, fmt.Errorf("value: %w: %d", agent.ErrInvalidAction, action)
	}
	return q.weights.At(state, action), nil
}

// Weights gets and returns the value table of the agent. The table is
// the one the agent learns in, so it changes with every update.
func (q *QLearning) Weights() map[string]*mat.Dense {
	return q.behaviour.Weights()
}

// SetWeights copies new values into the value table of the agent. The
// new table must have the same dimensions as the current one and is
// not retained.
func (q *QLearning) SetWeights(weights map[string]*mat.Dense) error {
	return q.behaviour.SetWeights(weights)
}
