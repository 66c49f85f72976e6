// Package envconfig provides configuration structs for configuring
// environments with default tasks. Environment configurations in this
// package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/environment/gridworld"
	"github.com/samuelfneumann/qtaxi/environment/maze"
	"github.com/samuelfneumann/qtaxi/environment/taxi"
	"github.com/samuelfneumann/qtaxi/utils/randutils"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Taxi      EnvName = "Taxi"
	Gridworld EnvName = "Gridworld"
	Maze      EnvName = "Maze"
)

// DefaultEpisodeCutoff is the step limit used when EpisodeCutoff is 0
const DefaultEpisodeCutoff = taxi.EpisodeSteps

// Default gridworld and maze parameters, used when Rows or Cols are 0
const (
	DefaultGridRows int     = 5
	DefaultGridCols int     = 5
	GridStepReward  float64 = -1.0
	GridGoalReward  float64 = 10.0
)

// StartConfig fixes the starting state of an environment. Taxi uses
// Row, Col, Passenger, and Destination. Gridworld and Maze use Row and
// Col.
type StartConfig struct {
	Row         int
	Col         int
	Passenger   int
	Destination int
}

// Config implements a specific configuration of a specific environment
// and its default task.
//
// If Start is nil, starting states are drawn from the environment's
// default distribution. For Taxi, this is uniform over all states where
// the passenger waits at a depot other than the destination. For
// Gridworld, the agent starts in the bottom left corner and the goal
// is the top right corner. A Maze starts in the top left corner and
// its goal is the bottom right corner.
//
// An EpisodeCutoff of 0 uses DefaultEpisodeCutoff, so every configured
// environment ends its episodes.
type Config struct {
	Environment   EnvName
	EpisodeCutoff uint
	Rows          int `json:",omitempty"`
	Cols          int `json:",omitempty"`
	Start         *StartConfig
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, episodeCutoff uint) Config {
	return Config{
		Environment:   envName,
		EpisodeCutoff: episodeCutoff,
	}
}

// Validate returns an error if the Config cannot create an environment
func (c Config) Validate() error {
	switch c.Environment {
	case Taxi, Gridworld, Maze:
	default:
		return fmt.Errorf("no such environment %q", c.Environment)
	}

	if c.Environment == Taxi && (c.Rows != 0 || c.Cols != 0) {
		return fmt.Errorf("taxi has a fixed %dx%d grid", taxi.Rows, taxi.Cols)
	}
	if c.Rows < 0 || c.Cols < 0 {
		return fmt.Errorf("grid dimensions must be non-negative")
	}
	return nil
}

// Create returns the environment described by the Config
func (c Config) Create(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}

	var e env.Environment
	var err error
	switch c.Environment {
	case Taxi:
		e, err = CreateTaxi(c.Start, int(c.EpisodeCutoff), seed)

	case Gridworld:
		e, err = CreateGridworld(c.Rows, c.Cols, c.Start,
			int(c.EpisodeCutoff), seed)

	case Maze:
		e, err = CreateMaze(c.Rows, c.Cols, c.Start, int(c.EpisodeCutoff),
			seed)
	}

	if err != nil {
		return nil, err
	}
	return e, nil
}

// cutoffOrDefault returns cutoff, or DefaultEpisodeCutoff if cutoff is
// not positive
func cutoffOrDefault(cutoff int) int {
	if cutoff <= 0 {
		return DefaultEpisodeCutoff
	}
	return cutoff
}

// CreateTaxi is a factory for creating the Taxi environment with the
// Deliver task. Starting states and sampled actions are drawn from
// separate streams derived from seed.
func CreateTaxi(start *StartConfig, cutoff int, seed uint64) (*taxi.Taxi,
	error) {
	cutoff = cutoffOrDefault(cutoff)
	seeds := randutils.Seeds(seed, 2)

	var s env.Starter
	var err error
	if start == nil {
		s, err = taxi.NewStarter(seeds[0])
	} else {
		s, err = taxi.NewStart(start.Row, start.Col, start.Passenger,
			start.Destination)
	}
	if err != nil {
		return nil, fmt.Errorf("createTaxi: %w", err)
	}

	task := taxi.NewDeliver(s, cutoff)
	t, _, err := taxi.New(task, seeds[1])
	if err != nil {
		return nil, fmt.Errorf("createTaxi: %w", err)
	}
	return t, nil
}

// CreateGridworld is a factory for creating a Gridworld environment
// with a single goal in the top right corner
func CreateGridworld(rows, cols int, start *StartConfig, cutoff int,
	seed uint64) (*gridworld.GridWorld, error) {
	cutoff = cutoffOrDefault(cutoff)
	if rows == 0 {
		rows = DefaultGridRows
	}
	if cols == 0 {
		cols = DefaultGridCols
	}

	x, y := 0, 0
	if start != nil {
		x, y = start.Col, start.Row
	}
	s, err := gridworld.NewSingleStart(x, y, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("createGridworld: %w", err)
	}

	task, err := gridworld.NewGoal(s, []int{cols - 1}, []int{rows - 1}, rows,
		cols, GridStepReward, GridGoalReward, cutoff)
	if err != nil {
		return nil, fmt.Errorf("createGridworld: %w", err)
	}

	g, _, err := gridworld.New(rows, cols, task, seed)
	if err != nil {
		return nil, fmt.Errorf("createGridworld: %w", err)
	}
	return g, nil
}

// CreateMaze is a factory for creating a Maze environment with the
// Solve task. Walls are carved by a randomized depth first search.
func CreateMaze(rows, cols int, start *StartConfig, cutoff int,
	seed uint64) (*maze.Maze, error) {
	cutoff = cutoffOrDefault(cutoff)
	if rows == 0 {
		rows = DefaultGridRows
	}
	if cols == 0 {
		cols = DefaultGridCols
	}

	state := 0
	if start != nil {
		if start.Row < 0 || start.Row >= rows || start.Col < 0 ||
			start.Col >= cols {
			return nil, fmt.Errorf("createMaze: start (%d, %d) outside the "+
				"%dx%d maze", start.Row, start.Col, rows, cols)
		}
		state = start.Row*cols + start.Col
	}

	task, err := maze.NewSolve(env.NewSingleStarter(state), rows, cols,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("createMaze: %w", err)
	}

	m, _, err := maze.NewBacktracking(task, rows, cols, seed)
	if err != nil {
		return nil, fmt.Errorf("createMaze: %w", err)
	}
	return m, nil
}
