package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/withdrawal"
)

// RequestWithdrawalCommandHandler creates a Pending withdrawal after checking the amount
// against the driver's current balance.
//
// The ledger row is locked while the request is created so a concurrent debit cannot
// slip in between the balance check and the insert.
type RequestWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
	policy     withdrawal.FeePolicy
}

func NewRequestWithdrawalCommandHandler(
	uowFactory WithdrawalUoWFactory,
	policy withdrawal.FeePolicy,
) RequestWithdrawalCommandHandler {
	return RequestWithdrawalCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the created request so the caller can echo the frozen fee split.
func (h *RequestWithdrawalCommandHandler) Handle(
	ctx context.Context,
	cmd RequestWithdrawalCommand,
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

	req := cmd.Request()
	l, err := uow.LedgerRepository().GetForUpdate(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	w, err := withdrawal.NewWithdrawal(cmd.WithdrawalID(), req, l.Balance(), h.policy, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.WithdrawalRepository().Add(ctx, w); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return w, nil
}
