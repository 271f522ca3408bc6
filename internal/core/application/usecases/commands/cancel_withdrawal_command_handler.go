package commands

import (
	"context"
	"time"
)

type CancelWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
}

func NewCancelWithdrawalCommandHandler(uowFactory WithdrawalUoWFactory) CancelWithdrawalCommandHandler {
	return CancelWithdrawalCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CancelWithdrawalCommandHandler) Handle(ctx context.Context, cmd CancelWithdrawalCommand) error {
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

	withdrawalRepo := uow.WithdrawalRepository()
	w, err := withdrawalRepo.GetForUpdate(ctx, cmd.WithdrawalID())
	if err != nil {
		return err
	}

	if err = w.Cancel(cmd.DriverID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = withdrawalRepo.Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
