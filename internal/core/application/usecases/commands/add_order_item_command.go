package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand adds one more priced item to an order whose items are all still
// Created or Cancelled.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	orderID kernel.UUID
	item    NewOrderItem

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(actor Actor, orderID kernel.UUID, item NewOrderItem) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		actor:   actor,
		orderID: orderID,
		item:    item,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateActor(actor),
		validateOrderID(orderID),
		validateItemID(item.ID),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) Actor() Actor         { return c.actor }
func (c AddOrderItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c AddOrderItemCommand) Item() NewOrderItem   { return c.item }

func validateActor(actor Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}

func validateItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	return nil
}
