package appointment

import "fmt"

// transitions is the allowed status state machine. Canceled and completed
// are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
	StatusCanceled:  {},
	StatusCompleted: {},
}

// CanTransition reports whether an appointment may move from one status to
// another. Setting the same status again is treated as a no-op and allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition (wrapped with context) when
// the move is not allowed.
func CheckTransition(from, to string) error {
	if !containsOption(StatusOptions, to) {
		return fmt.Errorf("status %q: %w", to, ErrInvalidEnum)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("cannot move appointment from %q to %q: %w", from, to, ErrInvalidTransition)
	}
	return nil
}
