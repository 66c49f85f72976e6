// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samuelfneumann/qtaxi/utils/floatutils"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency. Output is written to an
// io.Writer, which is usually a live-updating terminal writer that
// redraws the bar in place.
type ManualProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar that is width
// characters wide and reaches 100% after max increments
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		out:             out,
		width:           float64(width),
		maxProgress:     float64(max),
		currentProgress: 0,
		startTime:       time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	p.Set(int(p.currentProgress) + 1)
}

// Set sets the interal progress counter to progress, clipped to the
// maximum progress
func (p *ManualProgressBar) Set(progress int) {
	p.currentProgress = floatutils.Clip(float64(progress), 0, p.maxProgress)
}

// Fraction returns the fraction of progress made
func (p *ManualProgressBar) Fraction() float64 {
	if p.maxProgress <= 0 {
		return 1.0
	}
	return p.currentProgress / p.maxProgress
}

// String returns the progress bar followed by info
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Fraction() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		p.Fraction()*100, "%", time.Since(p.startTime).Truncate(time.Second)))

	return p.bar.String()
}

// Display writes the progress bar followed by info to the
// ManualProgressBar's writer
func (p *ManualProgressBar) Display(info string) error {
	line := p.String()
	if info != "" {
		line += " " + info
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}
