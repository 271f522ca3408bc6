package violation

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// Status is the state of a violation report.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Investigating
	Resolved
	Dismissed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Investigating: "Investigating",
		Resolved:      "Resolved",
		Dismissed:     "Dismissed",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:       {Investigating, Resolved, Dismissed},
		Investigating: {Resolved, Dismissed},
	}
}

func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != UnknownStatus && str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == UnknownStatus {
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

// IsOpen reports whether the report still awaits a decision.
func (s Status) IsOpen() bool {
	return s == Pending || s == Investigating
}

func (s Status) TransitionTo(target Status) (Status, error) {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return target, nil
		}
	}
	return UnknownStatus, errs.NewInvalidTransitionError("violation", s, target)
}

// Type classifies the reported misconduct.
type Type int

const (
	UnknownType Type = iota
	LateDelivery
	DamagedGoods
	RecklessDriving
	Rudeness
	Overcharging
	Fraud
	Other
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:     "Unknown",
		LateDelivery:    "LateDelivery",
		DamagedGoods:    "DamagedGoods",
		RecklessDriving: "RecklessDriving",
		Rudeness:        "Rudeness",
		Overcharging:    "Overcharging",
		Fraud:           "Fraud",
		Other:           "Other",
	}
}

func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if t != UnknownType && str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("violationType", fmt.Errorf("%q is not a valid violation type", s))
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == UnknownType {
		return errs.NewValueIsInvalidErrorWithCause("violationType", fmt.Errorf("%d is not a valid violation type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Severity grades a report.
type Severity int

const (
	UnknownSeverity Severity = iota
	Low
	Medium
	High
	Critical
)

func getSeverityStrings() map[Severity]string {
	return map[Severity]string{
		UnknownSeverity: "Unknown",
		Low:             "Low",
		Medium:          "Medium",
		High:            "High",
		Critical:        "Critical",
	}
}

func SeverityFromString(s string) (Severity, error) {
	for sev, str := range getSeverityStrings() {
		if sev != UnknownSeverity && str == s {
			return sev, nil
		}
	}
	return UnknownSeverity, errs.NewValueIsInvalidErrorWithCause("severity", fmt.Errorf("%q is not a valid severity", s))
}

func (s Severity) Validate() error {
	if _, ok := getSeverityStrings()[s]; !ok || s == UnknownSeverity {
		return errs.NewValueIsInvalidErrorWithCause("severity", fmt.Errorf("%d is not a valid severity", s))
	}
	return nil
}

func (s Severity) String() string {
	if str, ok := getSeverityStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
