package cmd

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/agent/tabular/qlearning"
	"github.com/samuelfneumann/qtaxi/environment/envconfig"
	"github.com/samuelfneumann/qtaxi/environment/taxi"
	"github.com/samuelfneumann/qtaxi/experiment"
	"github.com/spf13/cobra"
)

// Defaults used when neither a config file nor a flag sets a value
const (
	DefaultEpisodes     = 1000
	DefaultMaxSteps     = 200
	DefaultEvalEpisodes = 100
)

var (
	defaults = qlearning.DefaultConfig()

	configPath   string
	seed         uint64
	episodes     int
	maxSteps     int
	evalEpisodes int
	envName      string

	alpha        float64
	gamma        float64
	epsilonStart float64
	epsilonEnd   float64
	epsilonDecay float64

	logLevel string
	noColor  bool
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "JSON experiment configuration file")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "Seed for all random number generators")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", DefaultEpisodes, "Number of training episodes")
	cmd.PersistentFlags().IntVar(&maxSteps, "max-steps", DefaultMaxSteps, "Maximum steps per training episode")
	cmd.PersistentFlags().IntVar(&evalEpisodes, "eval-episodes", DefaultEvalEpisodes, "Number of greedy evaluation episodes, 0 to skip")
	cmd.PersistentFlags().StringVar(&envName, "env", string(envconfig.Taxi), "Environment to train on (Taxi, Gridworld or Maze)")

	cmd.PersistentFlags().Float64Var(&alpha, "alpha", defaults.LearningRate, "Learning rate")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", defaults.Discount, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilonStart, "epsilon-start", defaults.EpsilonStart, "Initial exploration rate")
	cmd.PersistentFlags().Float64Var(&epsilonEnd, "epsilon-end", defaults.EpsilonEnd, "Minimum exploration rate")
	cmd.PersistentFlags().Float64Var(&epsilonDecay, "epsilon-decay", defaults.EpsilonDecay, "Exploration rate decay per episode")

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// experimentConfig builds the experiment configuration. Values are
// read from the config file if one is given, otherwise defaults are
// used. Flags set on the command line override both.
func experimentConfig(cmd *cobra.Command) (experiment.Config, error) {
	var c experiment.Config
	if configPath != "" {
		var err error
		if c, err = experiment.LoadConfig(configPath); err != nil {
			return experiment.Config{}, err
		}
	} else {
		c = experiment.Config{
			Type:         experiment.OnlineExp,
			Episodes:     episodes,
			MaxSteps:     maxSteps,
			EvalEpisodes: evalEpisodes,
			EnvConf: envconfig.NewConfig(envconfig.EnvName(envName),
				uint(taxi.EpisodeSteps)),
			AgentConf: qlearning.NewConfig(alpha, gamma, epsilonStart,
				epsilonEnd, epsilonDecay),
		}
	}

	changed := cmd.Flags().Changed
	if changed("episodes") {
		c.Episodes = episodes
	}
	if changed("max-steps") {
		c.MaxSteps = maxSteps
	}
	if changed("eval-episodes") {
		c.EvalEpisodes = evalEpisodes
	}
	if changed("env") {
		c.EnvConf.Environment = envconfig.EnvName(envName)
	}

	if !changed("alpha") && !changed("gamma") && !changed("epsilon-start") &&
		!changed("epsilon-end") && !changed("epsilon-decay") {
		return c, nil
	}

	q, ok := c.AgentConf.Config.(qlearning.Config)
	if !ok {
		return experiment.Config{}, fmt.Errorf("cannot set Q-learning "+
			"hyperparameters of agent type %v", c.AgentConf.Type)
	}
	if changed("alpha") {
		q.LearningRate = alpha
	}
	if changed("gamma") {
		q.Discount = gamma
	}
	if changed("epsilon-start") {
		q.EpsilonStart = epsilonStart
	}
	if changed("epsilon-end") {
		q.EpsilonEnd = epsilonEnd
	}
	if changed("epsilon-decay") {
		q.EpsilonDecay = epsilonDecay
	}
	c.AgentConf.Config = q

	return c, nil
}
