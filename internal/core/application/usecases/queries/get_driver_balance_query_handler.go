package queries

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriverBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverBalanceQueryHandler(db *gorm.DB) GetDriverBalanceQueryHandler {
	return GetDriverBalanceQueryHandler{db: db}
}

func (h GetDriverBalanceQueryHandler) Handle(ctx context.Context, query GetDriverBalanceQuery) (DriverBalance, error) {
	if err := query.Validate(); err != nil {
		return DriverBalance{}, err
	}

	db := h.db.WithContext(ctx)
	driverID := query.DriverID().Bytes()
	result := DriverBalance{
		DriverID:      query.DriverID(),
		RecentEntries: make([]LedgerEntryView, 0),
	}

	var balances []int64
	if err := db.Raw(`SELECT balance FROM driver_ledgers WHERE driver_id = ?`, driverID).
		Scan(&balances).Error; err != nil {
		return DriverBalance{}, err
	}
	if len(balances) == 0 {
		return result, nil
	}
	result.Balance = kernel.Money(balances[0])

	rows, err := db.Raw(`
		SELECT
			id,
			kind,
			amount,
			balance_after,
			reference_id,
			created_at
		FROM ledger_entries
		WHERE driver_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, driverID, query.RecentEntries()).Rows()
	if err != nil {
		return DriverBalance{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry LedgerEntryView
		var id, referenceID uuid.UUID
		var kind int
		var amount, balanceAfter int64

		if err = rows.Scan(&id, &kind, &amount, &balanceAfter, &referenceID, &entry.CreatedAt); err != nil {
			return DriverBalance{}, err
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return DriverBalance{}, err
		}
		if entry.ReferenceID, err = kernel.UUIDFromBytes(referenceID[:]); err != nil {
			return DriverBalance{}, err
		}
		entry.Kind = ledger.EntryKind(kind).String()
		entry.Amount = kernel.Money(amount)
		entry.BalanceAfter = kernel.Money(balanceAfter)
		result.RecentEntries = append(result.RecentEntries, entry)
	}

	if err = rows.Err(); err != nil {
		return DriverBalance{}, err
	}
	return result, nil
}
