package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrCancelWithdrawalCommandIsNotConstructed = errors.New(
	"CancelWithdrawalCommand must be created via NewCancelWithdrawalCommand constructor",
)

// CancelWithdrawalCommand lets a driver take back their own Pending request.
type CancelWithdrawalCommand struct { //nolint:recvcheck //using for validation
	withdrawalID kernel.UUID
	driverID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelWithdrawalCommand(withdrawalID, driverID kernel.UUID) (CancelWithdrawalCommand, error) {
	var driverErr error
	if err := driverID.Validate(); err != nil {
		driverErr = errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	if err := errors.Join(withdrawalID.Validate(), driverErr); err != nil {
		return CancelWithdrawalCommand{}, err
	}

	return CancelWithdrawalCommand{
		withdrawalID: withdrawalID,
		driverID:     driverID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CancelWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrCancelWithdrawalCommandIsNotConstructed)
}

func (c CancelWithdrawalCommand) WithdrawalID() kernel.UUID { return c.withdrawalID }
func (c CancelWithdrawalCommand) DriverID() kernel.UUID     { return c.driverID }
