// Package experiment implements functionality for running an experiment
package experiment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/environment/envconfig"
	"github.com/samuelfneumann/qtaxi/experiment/trackers"
	"github.com/samuelfneumann/qtaxi/utils/randutils"
)

// Type is a type of experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment.
//
// An experiment trains an agent online for Episodes episodes, each cut
// off after MaxSteps steps, and then evaluates the greedy policy of the
// agent for EvalEpisodes episodes.
type Config struct {
	Type
	Episodes     int
	MaxSteps     int
	EvalEpisodes int
	EnvConf      envconfig.Config
	AgentConf    agent.TypedConfig
}

// LoadConfig reads a JSON encoded experiment Config from path
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not parse %v: %w",
			path, err)
	}
	if c.Type == "" {
		c.Type = OnlineExp
	}
	return c, nil
}

// Validate returns an error describing why the Config cannot be used
// to run an experiment, or nil if it can
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("no such experiment type %q", c.Type)
	}
	if c.Episodes < 0 {
		return fmt.Errorf("episodes must be non-negative, got %d", c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	}
	if c.EvalEpisodes < 0 {
		return fmt.Errorf("evaluation episodes must be non-negative, got %d",
			c.EvalEpisodes)
	}
	if c.AgentConf.Config == nil {
		return fmt.Errorf("no agent configured")
	}
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// CreateExp creates the experiment described by the Config. Every
// TimeStep generated while training is sent to the Trackers t. The
// environment and the agent are seeded with separate seeds derived
// from seed.
func (c Config) CreateExp(seed uint64, logger *slog.Logger,
	t ...trackers.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}
	seeds := randutils.Seeds(seed, 2)
	envSeed, agentSeed := seeds[0], seeds[1]

	env, err := c.EnvConf.Create(envSeed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %w",
			err)
	}

	// The agent sees the monitored environment so that its experience
	// is tracked
	monitored, monitor := trackers.NewMonitor(env, t...)

	a, err := c.AgentConf.CreateAgent(monitored, agentSeed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}
	if !c.AgentConf.ValidAgent(a) {
		return nil, fmt.Errorf("createExp: agent %T does not match its "+
			"%v config", a, c.AgentConf.Type)
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(monitor, a, c.Episodes, c.MaxSteps, c.EvalEpisodes,
			logger), nil
	}

	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}
