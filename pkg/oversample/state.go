package oversample

import "fmt"

type State int

const (
	Iterating State = iota
	Exhausted
	Done
)

func (s State) String() string {
	switch s {
	case Iterating:
		return "ITERATING"
	case Exhausted:
		return "EXHAUSTED"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) IsTerminal() bool {
	return s == Exhausted || s == Done
}

type event int

const (
	// eventAccepted: an iteration appended a row.
	eventAccepted event = iota
	// eventBudgetSpent: every iteration has been used.
	eventBudgetSpent
	// eventStalled: an iteration used all its tries without improving.
	eventStalled
	// eventCancelled: the caller's context ended the run.
	eventCancelled
)

func (e event) String() string {
	switch e {
	case eventAccepted:
		return "accepted"
	case eventBudgetSpent:
		return "budget spent"
	case eventStalled:
		return "stalled"
	case eventCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

func transition(from State, ev event) (State, error) {
	if from != Iterating {
		return from, fmt.Errorf("disallowed transition: %s on %s", from, ev)
	}
	switch ev {
	case eventAccepted:
		return Iterating, nil
	case eventBudgetSpent:
		return Done, nil
	case eventStalled, eventCancelled:
		return Exhausted, nil
	default:
		return from, fmt.Errorf("unknown event %s", ev)
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ITERATING":
		*s = Iterating
	case "EXHAUSTED":
		*s = Exhausted
	case "DONE":
		*s = Done
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}
