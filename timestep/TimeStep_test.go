package timestep

import "testing"

func TestTerminatedTruncated(t *testing.T) {
	tests := []struct {
		name       string
		stepType   StepType
		end        EndType
		terminated bool
		truncated  bool
	}{
		{"mid", Mid, Unset, false, false},
		{"first", First, Unset, false, false},
		{"terminal", Last, TerminalStateReached, true, false},
		{"timeout", Last, Timeout, false, true},
	}

	for _, test := range tests {
		step := New(test.stepType, -1, 3, 7)
		step.SetEnd(test.end)

		if got := step.Terminated(); got != test.terminated {
			t.Errorf("%s: terminated = %v, want %v", test.name, got,
				test.terminated)
		}
		if got := step.Truncated(); got != test.truncated {
			t.Errorf("%s: truncated = %v, want %v", test.name, got,
				test.truncated)
		}
	}
}

func TestNewTransition(t *testing.T) {
	step := New(First, 0, 4, 0)
	next := New(Last, 20, 9, 1)
	next.SetEnd(TerminalStateReached)

	tr := NewTransition(step, 5, next)
	want := Transition{State: 4, Action: 5, Reward: 20, NextState: 9,
		Terminated: true}
	if tr != want {
		t.Errorf("transition = %+v, want %+v", tr, want)
	}

	next.SetEnd(Timeout)
	if NewTransition(step, 5, next).Terminated {
		t.Error("truncated step should not produce a terminated transition")
	}
}
