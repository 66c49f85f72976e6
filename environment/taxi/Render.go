package taxi

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Render writes a drawing of the current state of the environment to
// the environment's output, coloured with ANSI escape codes unless
// colours have been disabled with SetColor.
//
// The taxi is highlighted yellow when empty and green when carrying
// the passenger. The passenger's depot is drawn in blue and the
// destination depot in magenta.
func (t *Taxi) Render() error {
	_, err := fmt.Fprint(t.out, Frame(t.state, t.lastAction, !t.noColor))
	return err
}

// Frame returns a drawing of state. If lastAction is a valid action, it
// is written below the grid. If colors is false, no escape codes are
// used and the taxi is drawn as '@', or as the lower case depot letter
// when it is on a depot.
func Frame(state, lastAction int, colors bool) string {
	au := aurora.NewAurora(colors)
	row, col, passenger, destination := Decode(state)

	grid := make([][]string, len(desc))
	for i, line := range desc {
		grid[i] = strings.Split(line, "")
	}

	if passenger < InTaxi {
		p := Depots[passenger]
		cell := &grid[1+p.Row][2*p.Col+1]
		*cell = au.Bold(au.Blue(*cell)).String()
	}
	d := Depots[destination]
	destCell := &grid[1+d.Row][2*d.Col+1]
	*destCell = au.Bold(au.Magenta(*destCell)).String()

	taxiCell := &grid[1+row][2*col+1]
	symbol := strings.TrimSpace(desc[1+row][2*col+1 : 2*col+2])
	if symbol == "" {
		symbol = " "
	}
	switch {
	case colors && passenger == InTaxi:
		*taxiCell = au.BgGreen(au.Black(symbol)).String()
	case colors:
		*taxiCell = au.BgYellow(au.Black(symbol)).String()
	case symbol == " ":
		*taxiCell = "@"
	default:
		*taxiCell = strings.ToLower(symbol)
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(strings.Join(line, ""))
		b.WriteString("\n")
	}
	if lastAction >= 0 && lastAction < NumActions {
		fmt.Fprintf(&b, "  (%v)\n", ActionNames[lastAction])
	}
	return b.String()
}
