package commands

import (
	"context"
	"fmt"

	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/pricing"
)

type ChangeItemInsuranceCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator *pricing.Calculator
}

func NewChangeItemInsuranceCommandHandler(
	uowFactory OrderUoWFactory,
	calculator *pricing.Calculator,
) ChangeItemInsuranceCommandHandler {
	return ChangeItemInsuranceCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle re-prices the item with the new insurance selection and stores it together with
// the recomputed order total. Items with a frozen price are refused with
// order.ErrItemPriceIsFrozen before any re-pricing happens.
func (h *ChangeItemInsuranceCommandHandler) Handle(ctx context.Context, cmd ChangeItemInsuranceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanManage(o) {
		return ErrForbidden
	}

	item, err := o.Item(cmd.ItemID())
	if err != nil {
		return err
	}
	if item.IsPriceFrozen() {
		return fmt.Errorf("%w: item is %s", order.ErrItemPriceIsFrozen, item.Status())
	}

	spec := item.Spec()
	spec.Insurance = cmd.Insured()
	spec.InsuranceFee = cmd.Fee()
	spec = withDefaultInsuranceFee(h.calculator, spec)

	price, err := h.calculator.Price(spec.PricingInput())
	if err != nil {
		return err
	}

	if err = o.ChangeItemInsurance(item.ID(), spec.Insurance, spec.InsuranceFee, price); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
