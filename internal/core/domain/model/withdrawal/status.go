package withdrawal

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// Status is the state of a withdrawal request.
type Status int

const (
	Unknown Status = iota
	// Pending waits for an administrator decision. The driver may still cancel it.
	Pending
	// Approved has been accepted by an administrator but no money has moved yet.
	Approved
	// Rejected is terminal; a rejection reason is recorded.
	Rejected
	// Completed is terminal; the requested amount was debited from the ledger.
	Completed
	// Cancelled is terminal; the driver withdrew the request before any admin action.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Approved:  "Approved",
		Rejected:  "Rejected",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Approved, Rejected, Completed, Cancelled}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:  {Approved, Rejected, Cancelled},
		Approved: {Completed},
	}
}

// StatusFromString parses the persisted or wire form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether the transition table allows moving from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target or an InvalidTransitionError naming both states.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("withdrawal", s, target)
	}
	return target, nil
}
