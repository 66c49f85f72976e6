package trackers

import (
	"fmt"

	ts "github.com/samuelfneumann/qtaxi/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// An episode is complete when its last TimeStep is tracked, or when
// the first TimeStep of the next episode is tracked. The second case
// covers episodes that the agent cut off before the environment ended
// them. An episode still running when Save is called is not saved
// unless Flush is called first.
type Return struct {
	inEpisode      bool
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which saves its
// data at filename
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return.
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		if r.inEpisode {
			r.flush()
		}
		r.inEpisode = true
		return
	}

	r.currentReturn += step.Reward
	if step.Last() {
		r.flush()
	}
}

// Flush completes the current episode, if one is running. The return
// accumulated so far becomes the return of the episode.
func (r *Return) Flush() {
	if r.inEpisode {
		r.flush()
	}
}

// flush caches the return of the current episode and starts
// accumulating the return for a new episode
func (r *Return) flush() {
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0.0
	r.inEpisode = false
}

// Data returns the episodic returns tracked so far
func (r *Return) Data() []float64 {
	data := make([]float64, len(r.episodeReturns))
	copy(data, r.episodeReturns)
	return data
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	if err := save(r.filename, r.episodeReturns); err != nil {
		return fmt.Errorf("save: online return data: %w", err)
	}
	return nil
}
