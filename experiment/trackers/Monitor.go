package trackers

import (
	"github.com/samuelfneumann/qtaxi/environment"
	ts "github.com/samuelfneumann/qtaxi/timestep"
)

// Monitor wraps an Environment and sends every TimeStep the
// Environment returns to a number of Trackers. An agent created with
// the Monitor as its Environment has its experience tracked without
// knowing about the Trackers.
//
// Tracking can be paused, for example while an agent is being
// evaluated instead of trained.
type Monitor struct {
	environment.Environment
	trackers []Tracker
	paused   bool
}

// renderMonitor is a Monitor around an Environment that can be
// rendered
type renderMonitor struct {
	*Monitor
	environment.Renderer
}

// NewMonitor returns a new Monitor wrapping env. If env implements
// environment.Renderer, so does the returned Environment.
func NewMonitor(env environment.Environment,
	t ...Tracker) (environment.Environment, *Monitor) {
	m := &Monitor{Environment: env, trackers: t}

	if r, ok := env.(environment.Renderer); ok {
		return &renderMonitor{m, r}, m
	}
	return m, m
}

// Register adds a new Tracker to the Monitor
func (m *Monitor) Register(t Tracker) {
	m.trackers = append(m.trackers, t)
}

// SetPaused pauses or resumes tracking
func (m *Monitor) SetPaused(paused bool) {
	m.paused = paused
}

// Reset resets the wrapped Environment and tracks the first TimeStep
func (m *Monitor) Reset() (ts.TimeStep, error) {
	step, err := m.Environment.Reset()
	if err == nil {
		m.track(step)
	}
	return step, err
}

// Step steps the wrapped Environment and tracks the next TimeStep
func (m *Monitor) Step(action int) (ts.TimeStep, bool, error) {
	step, last, err := m.Environment.Step(action)
	if err == nil {
		m.track(step)
	}
	return step, last, err
}

// Flush completes the episode in progress for every Tracker that
// implements Flusher. It should be called once no more TimeSteps of
// the current episode will be generated.
func (m *Monitor) Flush() {
	for _, t := range m.trackers {
		if f, ok := t.(Flusher); ok {
			f.Flush()
		}
	}
}

// Save saves the data of all Trackers, returning the first error
// encountered
func (m *Monitor) Save() error {
	for _, t := range m.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) track(step ts.TimeStep) {
	if m.paused {
		return
	}
	for _, t := range m.trackers {
		t.Track(step)
	}
}
