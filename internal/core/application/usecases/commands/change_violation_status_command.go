package commands

import (
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrChangeViolationStatusCommandIsNotConstructed = errors.New(
	"ChangeViolationStatusCommand must be created via NewChangeViolationStatusCommand constructor",
)

// ChangeViolationStatusCommand is an administrator moving a report to Investigating,
// Resolved or Dismissed. The resolution is only used for Resolved.
type ChangeViolationStatusCommand struct { //nolint:recvcheck //using for validation
	violationID kernel.UUID
	adminID     kernel.UUID
	status      violation.Status
	resolution  violation.Resolution
	notes       string

	guard guard.ConstructorGuard
}

func NewChangeViolationStatusCommand(
	violationID, adminID kernel.UUID,
	status violation.Status,
	resolution violation.Resolution,
	notes string,
) (ChangeViolationStatusCommand, error) {
	var adminErr, statusErr, resolutionErr error
	if err := adminID.Validate(); err != nil {
		adminErr = errs.NewValueIsRequiredErrorWithCause("adminId", err)
	}
	switch status {
	case violation.Investigating, violation.Dismissed:
		if resolution != (violation.Resolution{}) {
			resolutionErr = errs.NewValueIsInvalidErrorWithCause("resolution",
				fmt.Errorf("penalty, warnings and ban only apply to %s", violation.Resolved))
		}
	case violation.Resolved:
		resolutionErr = resolution.Validate()
	default:
		statusErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a status an administrator can set", status))
	}

	if err := errors.Join(violationID.Validate(), adminErr, statusErr, resolutionErr); err != nil {
		return ChangeViolationStatusCommand{}, err
	}

	return ChangeViolationStatusCommand{
		violationID: violationID,
		adminID:     adminID,
		status:      status,
		resolution:  resolution,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeViolationStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeViolationStatusCommandIsNotConstructed)
}

func (c ChangeViolationStatusCommand) ViolationID() kernel.UUID         { return c.violationID }
func (c ChangeViolationStatusCommand) AdminID() kernel.UUID             { return c.adminID }
func (c ChangeViolationStatusCommand) Status() violation.Status         { return c.status }
func (c ChangeViolationStatusCommand) Resolution() violation.Resolution { return c.resolution }
func (c ChangeViolationStatusCommand) Notes() string                    { return c.notes }
