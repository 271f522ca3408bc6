// Package ledgerrepo persists driver ledgers: one balance row per driver plus an
// append-only journal of entries.
package ledgerrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

type LedgerDTO struct {
	DriverID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance   int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

func (LedgerDTO) TableName() string {
	return "driver_ledgers"
}

// EntryDTO is one journal line. (kind, reference_id) is unique, so the same business
// event can never be applied twice.
type EntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind         int       `gorm:"not null;uniqueIndex:idx_ledger_entries_kind_reference"`
	Amount       int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	ReferenceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_entries_kind_reference"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "ledger_entries"
}

func entryFromDomain(e ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:           e.ID.Bytes(),
		DriverID:     e.DriverID.Bytes(),
		Kind:         int(e.Kind),
		Amount:       e.Amount.Int64(),
		BalanceAfter: e.BalanceAfter.Int64(),
		ReferenceID:  e.ReferenceID.Bytes(),
		CreatedAt:    e.CreatedAt,
	}
}

func toDomain(dto LedgerDTO) (*ledger.DriverLedger, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	return ledger.RestoreDriverLedger(driverID, kernel.Money(dto.Balance), dto.UpdatedAt, dto.Version)
}
