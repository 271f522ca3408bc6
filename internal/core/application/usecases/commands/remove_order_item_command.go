package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand drops an item from an order that nobody has started delivering.
type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderItemCommand(actor Actor, orderID, itemID kernel.UUID) (RemoveOrderItemCommand, error) {
	cmd := RemoveOrderItemCommand{
		actor:   actor,
		orderID: orderID,
		itemID:  itemID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateActor(actor),
		validateOrderID(orderID),
		validateItemID(itemID),
	); err != nil {
		return RemoveOrderItemCommand{}, err
	}

	return cmd, nil
}

func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

func (c RemoveOrderItemCommand) Actor() Actor         { return c.actor }
func (c RemoveOrderItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c RemoveOrderItemCommand) ItemID() kernel.UUID  { return c.itemID }

func validateOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return nil
}
