package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"
)

type WithdrawalRepository interface {
	Add(ctx context.Context, aggregate *withdrawal.Withdrawal) error

	// Update is conditioned on the loaded version and fails with errs.ErrVersionIsInvalid
	// when the row changed in between.
	Update(ctx context.Context, aggregate *withdrawal.Withdrawal) error

	Get(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error)

	// GetForUpdate locks the request row until the transaction ends, so two concurrent
	// completions observe each other's committed status.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error)
}
