package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrChangeItemInsuranceCommandIsNotConstructed = errors.New(
	"ChangeItemInsuranceCommand must be created via NewChangeItemInsuranceCommand constructor",
)

// ChangeItemInsuranceCommand toggles the insurance flag of an item that no driver has
// accepted yet. A zero fee on an insured item means the minimum insurance fee.
type ChangeItemInsuranceCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	orderID kernel.UUID
	itemID  kernel.UUID
	insured bool
	fee     kernel.Money

	guard guard.ConstructorGuard
}

func NewChangeItemInsuranceCommand(
	actor Actor,
	orderID, itemID kernel.UUID,
	insured bool,
	fee kernel.Money,
) (ChangeItemInsuranceCommand, error) {
	cmd := ChangeItemInsuranceCommand{
		actor:   actor,
		orderID: orderID,
		itemID:  itemID,
		insured: insured,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateActor(actor),
		validateOrderID(orderID),
		validateItemID(itemID),
		cmd.setFee(fee),
	); err != nil {
		return ChangeItemInsuranceCommand{}, err
	}

	return cmd, nil
}

func (c ChangeItemInsuranceCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemInsuranceCommandIsNotConstructed)
}

func (c ChangeItemInsuranceCommand) Actor() Actor         { return c.actor }
func (c ChangeItemInsuranceCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeItemInsuranceCommand) ItemID() kernel.UUID  { return c.itemID }
func (c ChangeItemInsuranceCommand) Insured() bool        { return c.insured }
func (c ChangeItemInsuranceCommand) Fee() kernel.Money    { return c.fee }

func (c *ChangeItemInsuranceCommand) setFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("insuranceFee", err)
	}
	if !c.insured {
		fee = 0
	}

	c.fee = fee
	return nil
}
