package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrRequestWithdrawalCommandIsNotConstructed = errors.New(
	"RequestWithdrawalCommand must be created via NewRequestWithdrawalCommand constructor",
)

// RequestWithdrawalCommand is a driver's cash-out request. Amount, account and its
// confirmation are validated by the withdrawal aggregate against the balance at the time
// the handler runs.
type RequestWithdrawalCommand struct { //nolint:recvcheck //using for validation
	withdrawalID kernel.UUID
	request      withdrawal.Request

	guard guard.ConstructorGuard
}

func NewRequestWithdrawalCommand(withdrawalID kernel.UUID, request withdrawal.Request) (RequestWithdrawalCommand, error) {
	var driverErr error
	if err := request.DriverID.Validate(); err != nil {
		driverErr = errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	if err := errors.Join(withdrawalID.Validate(), driverErr); err != nil {
		return RequestWithdrawalCommand{}, err
	}

	return RequestWithdrawalCommand{
		withdrawalID: withdrawalID,
		request:      request,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RequestWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRequestWithdrawalCommandIsNotConstructed)
}

func (c RequestWithdrawalCommand) WithdrawalID() kernel.UUID   { return c.withdrawalID }
func (c RequestWithdrawalCommand) Request() withdrawal.Request { return c.request }
