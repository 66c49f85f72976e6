// Package trackers implements Trackers, which track and save data in
// an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/qtaxi/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// Flusher is a Tracker that caches per-episode data and can complete
// an episode that was cut off without a last TimeStep
type Flusher interface {
	Tracker
	Flush()
}

// LoadData loads and returns the float64 data saved by a Tracker, such
// as episodic returns
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadData: %w", err)
	}
	return data, nil
}

// LoadLengths loads and returns the episode lengths saved by an
// EpisodeLength Tracker
func LoadLengths(filename string) ([]int, error) {
	var data []int
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadLengths: %w", err)
	}
	return data, nil
}

// load decodes the gob encoded data in filename into data
func load(filename string, data interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("could not open data file: %w", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("could not decode data: %w", err)
	}
	return nil
}

// save gob encodes data and writes it to filename
func save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %w", err)
	}

	en := gob.NewEncoder(file)
	if err := en.Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("could not encode data: %w", err)
	}
	return file.Close()
}
