// Package agent defines an agent interface
package agent

import (
	"context"

	"github.com/samuelfneumann/qtaxi/timestep"
	"gonum.org/v1/gonum/mat"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
// An Agent also owns the control loops that train it and evaluate it
// on the environment it was created with.
type Agent interface {
	Learner
	Policy

	// Train runs episodes of online learning and returns the return
	// of each episode
	Train(episodes, maxSteps int, progress ProgressFunc) ([]float64, error)

	// Evaluate runs greedy episodes without learning and returns the
	// average return
	Evaluate(episodes int, render bool) (float64, error)
}

// ContextTrainer is an Agent whose training can be interrupted between
// episodes
type ContextTrainer interface {
	TrainContext(ctx context.Context, episodes, maxSteps int,
		progress ProgressFunc) ([]float64, error)
}

// ProgressFunc receives periodic training progress: the number of
// episodes completed, the total number of episodes, and the average
// return of the most recent episodes
type ProgressFunc func(episodesCompleted, totalEpisodes int,
	averageReward float64)

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Update performs a single update using a transition
	Update(t timestep.Transition) error
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should have pointers to the same weights so that
// any changes the learner makes to the weights are reflected in the
// actions the Policy chooses
type Policy interface {
	SelectAction(state int) (int, error)
	Weights() map[string]*mat.Dense
	SetWeights(map[string]*mat.Dense) error
}

// EGreedyPolicy is a Policy whose exploration rate can be read and
// overridden per call
type EGreedyPolicy interface {
	Policy
	SelectActionEpsilon(state int, epsilon float64) (int, error)
	Epsilon() float64
}
