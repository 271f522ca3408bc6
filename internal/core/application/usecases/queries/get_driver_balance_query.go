package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

const DefaultRecentEntries = 20

var ErrGetDriverBalanceQueryIsNotConstructed = errors.New(
	"GetDriverBalanceQuery must be created via NewGetDriverBalanceQuery constructor",
)

// GetDriverBalanceQuery reads a driver's balance and the most recent ledger entries.
type GetDriverBalanceQuery struct {
	driverID      kernel.UUID
	recentEntries int
	guard         guard.ConstructorGuard
}

// NewGetDriverBalanceQuery uses DefaultRecentEntries when recentEntries is 0.
func NewGetDriverBalanceQuery(driverID kernel.UUID, recentEntries int) (GetDriverBalanceQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverBalanceQuery{}, err
	}
	if recentEntries == 0 {
		recentEntries = DefaultRecentEntries
	}
	if recentEntries < 0 || recentEntries > MaxPageLimit {
		return GetDriverBalanceQuery{}, errs.NewValueIsOutOfRangeError("recentEntries", recentEntries, 1, MaxPageLimit)
	}
	return GetDriverBalanceQuery{
		driverID:      driverID,
		recentEntries: recentEntries,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverBalanceQueryIsNotConstructed)
}

func (q GetDriverBalanceQuery) DriverID() kernel.UUID { return q.driverID }
func (q GetDriverBalanceQuery) RecentEntries() int    { return q.recentEntries }

type LedgerEntryView struct {
	ID           kernel.UUID  `json:"id"`
	Kind         string       `json:"kind"`
	Amount       kernel.Money `json:"amount"`
	BalanceAfter kernel.Money `json:"balanceAfter"`
	ReferenceID  kernel.UUID  `json:"referenceId"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// DriverBalance is zero with no entries for drivers that never had a ledger movement.
type DriverBalance struct {
	DriverID      kernel.UUID       `json:"driverId"`
	Balance       kernel.Money      `json:"balance"`
	RecentEntries []LedgerEntryView `json:"recentEntries"`
}
