package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
)

type LedgerRepository interface {
	// GetForUpdate returns the driver's ledger, creating an empty one on first use, and
	// locks it until the surrounding transaction ends. All balance mutations of one driver
	// are serialized through this lock.
	GetForUpdate(ctx context.Context, driverID kernel.UUID) (*ledger.DriverLedger, error)

	// Save writes the balance (conditioned on the loaded version) and appends the
	// ledger's new entries.
	Save(ctx context.Context, aggregate *ledger.DriverLedger) error
}
