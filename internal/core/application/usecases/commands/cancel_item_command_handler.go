package commands

import (
	"context"
	"time"
)

type CancelItemCommandHandler struct {
	uowFactory         OrderUoWFactory
	minimumReasonRunes int
}

// NewCancelItemCommandHandler creates the handler; minReasonLength is the minimum number
// of characters a cancellation reason must have.
func NewCancelItemCommandHandler(uowFactory OrderUoWFactory, minReasonLength int) CancelItemCommandHandler {
	return CancelItemCommandHandler{
		uowFactory:         uowFactory,
		minimumReasonRunes: minReasonLength,
	}
}

func (h *CancelItemCommandHandler) Handle(ctx context.Context, cmd CancelItemCommand) error {
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

	if err = o.CancelItem(cmd.ItemID(), cmd.Reason(), h.minimumReasonRunes, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
