package commands

import (
	"context"

	"settlement/internal/core/domain/model/pricing"
)

type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator *pricing.Calculator
}

func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, calculator *pricing.Calculator) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle prices the new item and appends it to the order. The order total is recomputed
// by the aggregate.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := newPricedItem(h.calculator, cmd.Item())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = o.AddItem(item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
