package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/services"
)

// DeliverItemCommandHandler marks an item Delivered and credits the payout to the driver's
// ledger in the same transaction.
//
// The order row is locked before the ledger row; every handler that touches a ledger
// locks it last, so two handlers never wait on each other in opposite order.
type DeliverItemCommandHandler struct {
	uowFactory DeliveryUoWFactory
	settlement services.Settlement
}

func NewDeliverItemCommandHandler(uowFactory DeliveryUoWFactory, settlement services.Settlement) DeliverItemCommandHandler {
	return DeliverItemCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle returns the payout credited to the driver.
func (h *DeliverItemCommandHandler) Handle(ctx context.Context, cmd DeliverItemCommand) (kernel.Money, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	target := cmd.Target()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, target.OrderID)
	if err != nil {
		return 0, err
	}

	ledgerRepo := uow.LedgerRepository()
	l, err := ledgerRepo.GetForUpdate(ctx, target.DriverID)
	if err != nil {
		return 0, err
	}

	payout, err := h.settlement.DeliverItem(o, l, target.ItemID, target.DriverID, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return 0, err
	}
	if err = ledgerRepo.Save(ctx, l); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return payout, nil
}
