package taxi

import (
	"bytes"
	"strings"
	"testing"

	env "github.com/samuelfneumann/qtaxi/environment"
)

func newTaxi(t *testing.T, row, col, passenger, destination int) *Taxi {
	t.Helper()
	s, err := NewStart(row, col, passenger, destination)
	if err != nil {
		t.Fatal(err)
	}
	taxi, _, err := New(NewDeliver(s, EpisodeSteps), 1)
	if err != nil {
		t.Fatal(err)
	}
	return taxi
}

func TestEncodeDecode(t *testing.T) {
	seen := make(map[int]bool)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			for p := 0; p <= InTaxi; p++ {
				for d := 0; d < len(Depots); d++ {
					s := Encode(row, col, p, d)
					if err := ValidState(s); err != nil {
						t.Fatal(err)
					}
					seen[s] = true

					r, c, gotP, gotD := Decode(s)
					if r != row || c != col || gotP != p || gotD != d {
						t.Fatalf("decode(%d) = (%d, %d, %d, %d), want "+
							"(%d, %d, %d, %d)", s, r, c, gotP, gotD, row, col,
							p, d)
					}
				}
			}
		}
	}
	if len(seen) != NumStates {
		t.Errorf("encoded %d distinct states, want %d", len(seen), NumStates)
	}
}

func TestSpecs(t *testing.T) {
	taxi := newTaxi(t, 0, 0, 1, 2)

	states, err := env.NumStates(taxi)
	if err != nil {
		t.Fatal(err)
	}
	actions, err := env.NumActions(taxi)
	if err != nil {
		t.Fatal(err)
	}
	if states != 500 || actions != 6 {
		t.Errorf("got %d states and %d actions, want 500 and 6", states,
			actions)
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name             string
		row, col, action int
		wantRow, wantCol int
	}{
		{"south", 0, 0, South, 1, 0},
		{"south edge", 4, 2, South, 4, 2},
		{"north", 3, 3, North, 2, 3},
		{"north edge", 0, 3, North, 0, 3},
		{"east open", 0, 0, East, 0, 1},
		{"east wall", 0, 1, East, 0, 1},
		{"east wall bottom", 3, 0, East, 3, 0},
		{"east edge", 2, 4, East, 2, 4},
		{"west open", 2, 2, West, 2, 1},
		{"west wall", 4, 3, West, 4, 3},
		{"west wall top", 1, 2, West, 1, 2},
		{"west edge", 2, 0, West, 2, 0},
	}

	for _, test := range tests {
		next := NextState(Encode(test.row, test.col, 0, 1), test.action)
		row, col, p, d := Decode(next)
		if row != test.wantRow || col != test.wantCol {
			t.Errorf("%s: moved to (%d, %d), want (%d, %d)", test.name,
				row, col, test.wantRow, test.wantCol)
		}
		if p != 0 || d != 1 {
			t.Errorf("%s: passenger or destination changed", test.name)
		}
	}
}

func TestRewards(t *testing.T) {
	// Passenger at Y (4, 0), destination G (0, 4)
	taxi := newTaxi(t, 4, 0, 2, 1)

	// Illegal dropoff with no passenger
	step, last, err := taxi.Step(Dropoff)
	if err != nil {
		t.Fatal(err)
	}
	if step.Reward != IllegalReward || last {
		t.Errorf("illegal dropoff: reward %v last %v", step.Reward, last)
	}

	// Legal pickup
	step, _, err = taxi.Step(Pickup)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, p, _ := Decode(step.Observation); p != InTaxi {
		t.Fatalf("passenger at %d after pickup, want in taxi", p)
	}
	if step.Reward != StepReward {
		t.Errorf("pickup reward = %v, want %v", step.Reward, StepReward)
	}

	// Illegal pickup with passenger already in the taxi
	step, _, _ = taxi.Step(Pickup)
	if step.Reward != IllegalReward {
		t.Errorf("second pickup reward = %v, want %v", step.Reward,
			IllegalReward)
	}

	// Dropping the passenger at Y again leaves them at Y
	step, last, _ = taxi.Step(Dropoff)
	if _, _, p, _ := Decode(step.Observation); p != 2 || last {
		t.Errorf("dropoff at wrong depot: passenger %d, last %v", p, last)
	}
	if step.Reward != StepReward {
		t.Errorf("wrong depot dropoff reward = %v, want %v", step.Reward,
			StepReward)
	}
}

func TestDelivery(t *testing.T) {
	// Passenger at R (0, 0), destination Y (4, 0)
	taxi := newTaxi(t, 0, 0, 0, 2)

	actions := []int{Pickup, South, South, South, South}
	for _, a := range actions {
		if _, last, err := taxi.Step(a); err != nil || last {
			t.Fatalf("action %v: last %v, err %v", ActionNames[a], last, err)
		}
	}

	step, last, err := taxi.Step(Dropoff)
	if err != nil {
		t.Fatal(err)
	}
	if !last || !step.Terminated() {
		t.Errorf("delivery should terminate the episode: %v", step)
	}
	if step.Reward != DeliverReward {
		t.Errorf("delivery reward = %v, want %v", step.Reward, DeliverReward)
	}

	if _, _, err := taxi.Step(North); err == nil {
		t.Error("stepping after the episode ended should fail")
	}
}

func TestTruncation(t *testing.T) {
	taxi := newTaxi(t, 2, 2, 0, 3)

	for i := 1; i <= EpisodeSteps; i++ {
		step, last, err := taxi.Step(Pickup)
		if err != nil {
			t.Fatal(err)
		}
		if i < EpisodeSteps && last {
			t.Fatalf("episode ended early at step %d", i)
		}
		if i == EpisodeSteps {
			if !last || !step.Truncated() || step.Terminated() {
				t.Errorf("step %d should be truncated: %v", i, step)
			}
		}
	}
}

func TestStartStates(t *testing.T) {
	states := StartStates()
	if len(states) != 300 {
		t.Fatalf("got %d start states, want 300", len(states))
	}

	seen := make(map[int]bool)
	for _, s := range states {
		if seen[s] {
			t.Fatalf("duplicate start state %d", s)
		}
		seen[s] = true

		_, _, p, d := Decode(s)
		if p == InTaxi || p == d {
			t.Errorf("start state %d has passenger %d destination %d", s, p, d)
		}
	}

	s, err := NewStarter(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if start := s.Start(); !seen[start] {
			t.Fatalf("starter returned invalid state %d", start)
		}
	}
}

func TestNewStartErrors(t *testing.T) {
	tests := []struct {
		name                 string
		row, col, pass, dest int
	}{
		{"same depot", 0, 0, 1, 1},
		{"row", 5, 0, 0, 1},
		{"col", 0, -1, 0, 1},
		{"passenger", 0, 0, 4, 1},
		{"destination", 0, 0, 0, 7},
	}
	for _, test := range tests {
		if _, err := NewStart(test.row, test.col, test.pass,
			test.dest); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestRender(t *testing.T) {
	taxi := newTaxi(t, 2, 2, 0, 3)
	if _, _, err := taxi.Step(East); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	taxi.SetOutput(&buf)
	if err := taxi.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(East)") {
		t.Errorf("render output missing last action:\n%v", buf.String())
	}

	frame := Frame(taxi.State(), East, false)
	lines := strings.Split(frame, "\n")
	if got := lines[3][2*3+1]; got != '@' {
		t.Errorf("taxi drawn as %q at (2, 3), want '@'\n%v", got, frame)
	}
	if strings.Contains(frame, "\x1b[") {
		t.Error("frame without colours contains escape codes")
	}
}

func TestDraw(t *testing.T) {
	img := Draw(Encode(1, 1, InTaxi, 0))
	b := img.Bounds()
	if b.Dx() != int(float64(Cols)*CellPixels) ||
		b.Dy() != int(float64(Rows)*CellPixels) {
		t.Errorf("image size = %v", b)
	}
}
