package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel returned (via Unwrap) by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports that a state machine refused to move from Current to Target.
//
// Entity names the state machine ("order item", "withdrawal", "violation") so that callers
// can render the error without knowing which aggregate produced it.
type InvalidTransitionError struct {
	Entity  string
	Current string
	Target  string
	Cause   error
}

func NewInvalidTransitionError(entity string, current, target fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:  entity,
		Current: current.String(),
		Target:  target.String(),
	}
}

func NewInvalidTransitionErrorWithCause(
	entity string,
	current, target fmt.Stringer,
	cause error,
) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:  entity,
		Current: current.String(),
		Target:  target.String(),
		Cause:   cause,
	}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.Current, e.Target)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
