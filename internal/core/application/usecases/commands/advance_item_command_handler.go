package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/order"
)

type AdvanceItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceItemCommandHandler(uowFactory OrderUoWFactory) AdvanceItemCommandHandler {
	return AdvanceItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AdvanceItemCommandHandler) Handle(ctx context.Context, cmd AdvanceItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	target := cmd.Target()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, target.OrderID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if cmd.Status() == order.PickedUp {
		err = o.PickUpItem(target.ItemID, target.DriverID, now)
	} else {
		err = o.StartDeliveringItem(target.ItemID, target.DriverID, now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
