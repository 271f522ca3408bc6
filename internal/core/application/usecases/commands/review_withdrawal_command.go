package commands

import (
	"errors"
	"fmt"
	"strings"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrReviewWithdrawalCommandIsNotConstructed = errors.New(
	"ReviewWithdrawalCommand must be created via NewReviewWithdrawalCommand constructor",
)

// Decision is the administrator action applied to a withdrawal request.
type Decision int

const (
	UnknownDecision Decision = iota
	Approve
	Reject
	Complete
)

func (d Decision) String() string {
	switch d {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// ReviewWithdrawalCommand carries one administrator decision on a withdrawal request.
//
// Example:
//
//	cmd, err := NewReviewWithdrawalCommand(id, adminID, Reject, "account closed", "called the driver")
type ReviewWithdrawalCommand struct { //nolint:recvcheck //using for validation
	withdrawalID kernel.UUID
	adminID      kernel.UUID
	decision     Decision
	reason       string
	note         string

	guard guard.ConstructorGuard
}

// NewReviewWithdrawalCommand validates the ids and the decision. reason is only used by
// Reject, where it is required.
func NewReviewWithdrawalCommand(
	withdrawalID, adminID kernel.UUID,
	decision Decision,
	reason, note string,
) (ReviewWithdrawalCommand, error) {
	var adminErr, decisionErr, reasonErr error
	if err := adminID.Validate(); err != nil {
		adminErr = errs.NewValueIsRequiredErrorWithCause("adminId", err)
	}
	if decision < Approve || decision > Complete {
		decisionErr = errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a decision", decision))
	}
	if decision == Reject && strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("rejectionReason")
	}

	if err := errors.Join(withdrawalID.Validate(), adminErr, decisionErr, reasonErr); err != nil {
		return ReviewWithdrawalCommand{}, err
	}

	return ReviewWithdrawalCommand{
		withdrawalID: withdrawalID,
		adminID:      adminID,
		decision:     decision,
		reason:       reason,
		note:         note,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrReviewWithdrawalCommandIsNotConstructed)
}

func (c ReviewWithdrawalCommand) WithdrawalID() kernel.UUID { return c.withdrawalID }
func (c ReviewWithdrawalCommand) AdminID() kernel.UUID      { return c.adminID }
func (c ReviewWithdrawalCommand) Decision() Decision        { return c.decision }
func (c ReviewWithdrawalCommand) Reason() string            { return c.reason }
func (c ReviewWithdrawalCommand) Note() string              { return c.note }
