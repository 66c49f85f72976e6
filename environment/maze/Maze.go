// Package maze implements maze environments using GoMaze
package maze

import (
	"fmt"
	"io"
	"os"

	"github.com/samuelfneumann/gomaze"
	"github.com/samuelfneumann/qtaxi/environment"
	"github.com/samuelfneumann/qtaxi/timestep"
	"github.com/samuelfneumann/qtaxi/utils/randutils"
)

// Actions, in the order GoMaze numbers them
const (
	North int = iota
	South
	West
	East

	NumActions int = gomaze.Actions
)

// ActionNames maps actions to their names
var ActionNames = [NumActions]string{"North", "South", "West", "East"}

// Maze is a perfect maze carved into a rows x cols grid. States are
// the index row*cols + col of the cell the agent is in and row 0 is
// the top of the maze. Moving into a wall leaves the agent in place.
//
// Maze implements the environment.Environment and environment.Renderer
// interfaces.
type Maze struct {
	environment.Task
	maze    *gomaze.Maze
	sampler *environment.ActionSampler
	out     io.Writer

	rows, cols  int
	currentStep timestep.TimeStep
}

// New creates a new maze with the given number of rows and columns.
// The walls are carved by init. The environment is reset and the first
// TimeStep returned.
func New(t environment.Task, rows, cols int, init gomaze.Initer,
	seed uint64) (*Maze, timestep.TimeStep, error) {
	if rows <= 0 || cols <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: maze must have "+
			"positive dimensions, got (%d, %d)", rows, cols)
	}

	// The goal is always the bottom right cell, which Solve agrees with
	maze, err := gomaze.NewMaze(rows, cols, -1, -1, -1, -1, init, false)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: could not "+
			"create maze: %v", err)
	}

	m := &Maze{
		Task:    t,
		maze:    maze,
		sampler: environment.NewActionSampler(NumActions, seed),
		out:     os.Stdout,
		rows:    rows,
		cols:    cols,
	}

	step, err := m.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return m, step, nil
}

// NewBacktracking returns a maze with walls carved by a randomized
// depth first search. The walls and the sampled actions use separate
// streams derived from seed.
func NewBacktracking(t environment.Task, rows, cols int,
	seed uint64) (*Maze, timestep.TimeStep, error) {
	seeds := randutils.Seeds(seed, 2)
	init := gomaze.NewBacktracking(int64(seeds[0]))
	return New(t, rows, cols, init, seeds[1])
}

// Reset resets the environment to a starting state and returns the
// first TimeStep of the episode
func (m *Maze) Reset() (timestep.TimeStep, error) {
	start := m.Start()
	if start < 0 || start >= m.rows*m.cols {
		return timestep.TimeStep{}, fmt.Errorf("reset: illegal starting "+
			"state %d", start)
	}

	m.maze.Reset()
	row, col := start/m.cols, start%m.cols
	if err := m.maze.SetCell(col, row); err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	m.currentStep = timestep.New(timestep.First, 0, start, 0)
	return m.currentStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the episode has ended
func (m *Maze) Step(action int) (timestep.TimeStep, bool, error) {
	if m.currentStep.Last() {
		return timestep.TimeStep{}, true, fmt.Errorf("step: episode has " +
			"ended, call Reset")
	}
	if action < 0 || action >= NumActions {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %d not in [0, %d)", action, NumActions)
	}

	obs, _, _, err := m.maze.Step(action)
	if err != nil {
		return timestep.TimeStep{}, false, fmt.Errorf("step: %v", err)
	}
	next := int(obs[1])*m.cols + int(obs[0])

	reward := m.GetReward(m.currentStep.Observation, action, next)
	step := timestep.New(timestep.Mid, reward, next, m.currentStep.Number+1)
	last := m.End(&step)

	m.currentStep = step
	return step, last, nil
}

// SampleAction samples an action uniformly at random
func (m *Maze) SampleAction() int {
	return m.sampler.Sample()
}

// ObservationSpec returns the observation specification of the
// environment
func (m *Maze) ObservationSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Observation, m.rows*m.cols)
}

// ActionSpec returns the action specification of the environment
func (m *Maze) ActionSpec() environment.Spec {
	return environment.NewDiscreteSpec(environment.Action, NumActions)
}

// Position returns the row and column of the agent
func (m *Maze) Position() (row, col int) {
	s := m.currentStep.Observation
	return s / m.cols, s % m.cols
}

// Render draws the maze with the agent marked by an x
func (m *Maze) Render() error {
	_, err := fmt.Fprint(m.out, m.maze.String())
	return err
}

// SetOutput sets the writer that Render writes to. By default this is
// os.Stdout.
func (m *Maze) SetOutput(w io.Writer) {
	m.out = w
}

func (m *Maze) String() string {
	row, col := m.Position()
	return fmt.Sprintf("Maze | At: (%d, %d)  |  Task: %v  |  Bounds: (%d, %d)",
		row, col, m.Task, m.rows, m.cols)
}
