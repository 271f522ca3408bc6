package commands

import (
	"errors"

	"settlement/internal/pkg/guard"
)

var ErrDeliverItemCommandIsNotConstructed = errors.New(
	"DeliverItemCommand must be created via NewDeliverItemCommand constructor",
)

// DeliverItemCommand completes an item and credits the driver's payout.
type DeliverItemCommand struct { //nolint:recvcheck //using for validation
	target ItemTarget

	guard guard.ConstructorGuard
}

func NewDeliverItemCommand(target ItemTarget) (DeliverItemCommand, error) {
	if err := target.validate(); err != nil {
		return DeliverItemCommand{}, err
	}

	return DeliverItemCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverItemCommand) Validate() error {
	return c.guard.Validate(ErrDeliverItemCommandIsNotConstructed)
}

func (c DeliverItemCommand) Target() ItemTarget { return c.target }
