package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/environment"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.EGreedyQLearningTabular, Config{})
}

// Config represents a configuration for the QLearning agent.
// Hyperparameters are fixed once the agent is created.
type Config struct {
	LearningRate float64 // α ∈ (0, 1]
	Discount     float64 // γ ∈ [0, 1]

	// Behaviour policy exploration. Epsilon starts at EpsilonStart and
	// is multiplied by EpsilonDecay after every training episode, but
	// never drops below EpsilonEnd.
	EpsilonStart float64
	EpsilonEnd   float64
	EpsilonDecay float64
}

// DefaultConfig returns the Config used when no hyperparameters are
// given
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.1,
		Discount:     0.99,
		EpsilonStart: 1.0,
		EpsilonEnd:   0.01,
		EpsilonDecay: 0.995,
	}
}

// NewConfig returns a new Config as an agent.TypedConfig so that it
// can easily be JSON serialized/deserialized without knowing the
// underlying concrete type.
func NewConfig(learningRate, discount, epsilonStart, epsilonEnd,
	epsilonDecay float64) agent.TypedConfig {
	config := Config{
		LearningRate: learningRate,
		Discount:     discount,
		EpsilonStart: epsilonStart,
		EpsilonEnd:   epsilonEnd,
		EpsilonDecay: epsilonDecay,
	}
	return agent.NewTypedConfig(config)
}

// CreateAgent creates the agent from the Config. The value table is
// always zero-initialized.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a QLearning agent
// with the hyperparameters of the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	q, ok := a.(*QLearning)
	return ok && q.Config() == c
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	// Comparisons are written so that NaN fails them
	if !(c.LearningRate > 0 && c.LearningRate <= 1) {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if !(c.Discount >= 0 && c.Discount <= 1) {
		return fmt.Errorf("discount must be in [0, 1], got %v", c.Discount)
	}
	if !(c.EpsilonEnd >= 0 && c.EpsilonStart <= 1) {
		return fmt.Errorf("epsilon must be in [0, 1], got start %v and "+
			"end %v", c.EpsilonStart, c.EpsilonEnd)
	}
	if !(c.EpsilonEnd <= c.EpsilonStart) {
		return fmt.Errorf("epsilon end (%v) cannot exceed epsilon "+
			"start (%v)", c.EpsilonEnd, c.EpsilonStart)
	}
	if !(c.EpsilonDecay > 0 && c.EpsilonDecay <= 1) {
		return fmt.Errorf("epsilon decay must be in (0, 1], got %v",
			c.EpsilonDecay)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
