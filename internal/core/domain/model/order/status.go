package order

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// Status is the lifecycle state of a single order item.
//
// State transitions:
//
//	Created ──> Accepted ──> PickedUp ──> Delivering ──> Delivered
//	   │
//	   └──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is only reachable from Created,
// i.e. before a driver has accepted the item. Stages cannot be skipped.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status; the item is priced and waits for a driver.
	Created

	// Accepted means a driver has taken the item.
	Accepted

	// PickedUp means the driver has collected the cargo.
	PickedUp

	// Delivering means the cargo is on its way to the recipient.
	Delivering

	// Delivered is the terminal success state; reaching it credits the driver's ledger.
	Delivered

	// Cancelled is the terminal failure state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Accepted:   "Accepted",
		PickedUp:   "PickedUp",
		Delivering: "Delivering",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getTransitions is the transition table of the item state machine. A status that is
// missing from the table, or maps to an empty list, is terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Created:    {Accepted, Cancelled},
		Accepted:   {PickedUp},
		PickedUp:   {Delivering},
		Delivering: {Delivered},
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

// Validate checks if the Status value is one of the defined, non-Unknown statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// HasDriver reports whether an item in status s must have a driver assigned.
func (s Status) HasDriver() bool {
	return s == Accepted || s == PickedUp || s == Delivering || s == Delivered
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

// TransitionTo returns target if the table allows it, or an InvalidTransitionError
// naming both states otherwise.
//
// Example:
//
//	next, err := order.Created.TransitionTo(order.Delivered)
//	// err: invalid transition: order item cannot move from Created to Delivered
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("order item", s, target)
	}
	return target, nil
}
