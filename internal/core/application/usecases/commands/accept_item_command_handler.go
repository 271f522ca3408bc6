package commands

import (
	"context"
	"fmt"
	"time"

	"settlement/internal/core/ports"
)

// AcceptItemCommandHandler assigns a driver to an item after asking the driver-status
// store whether the driver is suspended.
type AcceptItemCommandHandler struct {
	uowFactory  OrderUoWFactory
	suspensions ports.DriverSuspensions
}

func NewAcceptItemCommandHandler(
	uowFactory OrderUoWFactory,
	suspensions ports.DriverSuspensions,
) AcceptItemCommandHandler {
	return AcceptItemCommandHandler{
		uowFactory:  uowFactory,
		suspensions: suspensions,
	}
}

// Handle locks the order, accepts the item for the driver and stores it. Two drivers
// racing for the same item are serialized by the lock; the loser sees the item Accepted
// and gets an InvalidTransitionError.
func (h *AcceptItemCommandHandler) Handle(ctx context.Context, cmd AcceptItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	target := cmd.Target()

	suspended, err := h.suspensions.IsSuspended(ctx, target.DriverID)
	if err != nil {
		return fmt.Errorf("check driver status: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = o.AcceptItem(target.ItemID, target.DriverID, suspended, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
