package trackers

import (
	"fmt"

	"github.com/samuelfneumann/qtaxi/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
//
// As with Return, an episode that is still running when Save is called
// is not saved unless Flush is called first.
type EpisodeLength struct {
	inEpisode      bool
	currentLength  int
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track tracks the episode lengths in an experiment. The length of an
// episode is cached when its last timestep is tracked, or when the
// first timestep of the next episode is tracked.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.First() {
		if e.inEpisode {
			e.flush()
		}
		e.inEpisode = true
		return
	}

	e.currentLength = t.Number
	if t.Last() {
		e.flush()
	}
}

// Flush completes the current episode, if one is running
func (e *EpisodeLength) Flush() {
	if e.inEpisode {
		e.flush()
	}
}

func (e *EpisodeLength) flush() {
	e.episodeLengths = append(e.episodeLengths, e.currentLength)
	e.currentLength = 0
	e.inEpisode = false
}

// Data returns the episode lengths tracked so far
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	if err := save(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: episode length data: %w", err)
	}
	return nil
}
