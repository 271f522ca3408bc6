package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"
)

type ViolationRepository interface {
	// Add persists a new report. A report that duplicates an existing one (same reporter,
	// driver and order, or same reporter and driver without order while the first report
	// is still open) fails with errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *violation.Violation) error

	Update(ctx context.Context, aggregate *violation.Violation) error

	Get(ctx context.Context, id kernel.UUID) (*violation.Violation, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*violation.Violation, error)
}
