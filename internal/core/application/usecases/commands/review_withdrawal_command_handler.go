package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/core/domain/services"
)

// ReviewWithdrawalCommandHandler applies administrator decisions to withdrawal requests.
//
// Approve and Reject only change the request. Complete also debits the driver's ledger
// through services.Settlement, so the debit and the status change commit together.
// The request row is locked first: of two concurrent completions the second one waits,
// then observes Completed and fails with an InvalidTransitionError without debiting.
type ReviewWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
	settlement services.Settlement
}

func NewReviewWithdrawalCommandHandler(
	uowFactory WithdrawalUoWFactory,
	settlement services.Settlement,
) ReviewWithdrawalCommandHandler {
	return ReviewWithdrawalCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle returns the request in its new state.
func (h *ReviewWithdrawalCommandHandler) Handle(
	ctx context.Context,
	cmd ReviewWithdrawalCommand,
) (*withdrawal.Withdrawal, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	withdrawalRepo := uow.WithdrawalRepository()
	w, err := withdrawalRepo.GetForUpdate(ctx, cmd.WithdrawalID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch cmd.Decision() {
	case Approve:
		err = w.Approve(cmd.AdminID(), cmd.Note(), now)
	case Reject:
		err = w.Reject(cmd.AdminID(), cmd.Reason(), cmd.Note(), now)
	case Complete:
		err = h.complete(ctx, uow, w, cmd, now)
	}
	if err != nil {
		return nil, err
	}

	if err = withdrawalRepo.Update(ctx, w); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (h *ReviewWithdrawalCommandHandler) complete(
	ctx context.Context,
	uow WithdrawalUoW,
	w *withdrawal.Withdrawal,
	cmd ReviewWithdrawalCommand,
	at time.Time,
) error {
	// Fail before touching the ledger row when the request is not Approved.
	if err := w.ValidateComplete(); err != nil {
		return err
	}

	ledgerRepo := uow.LedgerRepository()
	l, err := ledgerRepo.GetForUpdate(ctx, w.DriverID())
	if err != nil {
		return err
	}

	if err = h.settlement.CompleteWithdrawal(w, l, cmd.AdminID(), cmd.Note(), at); err != nil {
		return err
	}

	return ledgerRepo.Save(ctx, l)
}
