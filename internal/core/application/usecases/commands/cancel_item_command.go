package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrCancelItemCommandIsNotConstructed = errors.New(
	"CancelItemCommand must be created via NewCancelItemCommand constructor",
)

// CancelItemCommand cancels an item nobody has accepted. The reason is checked by the
// order aggregate against the configured minimum length.
type CancelItemCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	orderID kernel.UUID
	itemID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelItemCommand(actor Actor, orderID, itemID kernel.UUID, reason string) (CancelItemCommand, error) {
	if err := errors.Join(
		validateActor(actor),
		validateOrderID(orderID),
		validateItemID(itemID),
	); err != nil {
		return CancelItemCommand{}, err
	}

	return CancelItemCommand{
		actor:   actor,
		orderID: orderID,
		itemID:  itemID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelItemCommand) Validate() error {
	return c.guard.Validate(ErrCancelItemCommandIsNotConstructed)
}

func (c CancelItemCommand) Actor() Actor         { return c.actor }
func (c CancelItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelItemCommand) ItemID() kernel.UUID  { return c.itemID }
func (c CancelItemCommand) Reason() string       { return c.reason }
