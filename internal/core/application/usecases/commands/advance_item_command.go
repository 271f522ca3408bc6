package commands

import (
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/order"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrAdvanceItemCommandIsNotConstructed = errors.New(
	"AdvanceItemCommand must be created via NewAdvanceItemCommand constructor",
)

// AdvanceItemCommand moves an item to PickedUp or Delivering on behalf of its driver.
// Delivery itself goes through DeliverItemCommand because it settles money.
type AdvanceItemCommand struct { //nolint:recvcheck //using for validation
	target ItemTarget
	status order.Status

	guard guard.ConstructorGuard
}

func NewAdvanceItemCommand(target ItemTarget, status order.Status) (AdvanceItemCommand, error) {
	var statusErr error
	if status != order.PickedUp && status != order.Delivering {
		statusErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a driver progress status", status))
	}

	if err := errors.Join(target.validate(), statusErr); err != nil {
		return AdvanceItemCommand{}, err
	}

	return AdvanceItemCommand{
		target: target,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceItemCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceItemCommandIsNotConstructed)
}

func (c AdvanceItemCommand) Target() ItemTarget   { return c.target }
func (c AdvanceItemCommand) Status() order.Status { return c.status }
