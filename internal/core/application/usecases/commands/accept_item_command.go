package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrAcceptItemCommandIsNotConstructed = errors.New(
	"AcceptItemCommand must be created via NewAcceptItemCommand constructor",
)

// ItemTarget identifies one item of one order and the driver acting on it.
type ItemTarget struct {
	DriverID kernel.UUID
	OrderID  kernel.UUID
	ItemID   kernel.UUID
}

func (t ItemTarget) validate() error {
	var driverErr error
	if err := t.DriverID.Validate(); err != nil {
		driverErr = errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	return errors.Join(
		driverErr,
		validateOrderID(t.OrderID),
		validateItemID(t.ItemID),
	)
}

// AcceptItemCommand assigns the calling driver to a Created item.
type AcceptItemCommand struct { //nolint:recvcheck //using for validation
	target ItemTarget

	guard guard.ConstructorGuard
}

func NewAcceptItemCommand(target ItemTarget) (AcceptItemCommand, error) {
	if err := target.validate(); err != nil {
		return AcceptItemCommand{}, err
	}

	return AcceptItemCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptItemCommand) Validate() error {
	return c.guard.Validate(ErrAcceptItemCommandIsNotConstructed)
}

func (c AcceptItemCommand) Target() ItemTarget { return c.target }
