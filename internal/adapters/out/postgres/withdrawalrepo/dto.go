// Package withdrawalrepo persists driver withdrawal requests.
package withdrawalrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
)

type WithdrawalDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	RequestedAmount   int64      `gorm:"not null"`
	ActualAmount      int64      `gorm:"not null"`
	SystemFee         int64      `gorm:"not null"`
	BankAccountName   string     `gorm:"not null"`
	BankAccountNumber string     `gorm:"not null"`
	BankName          string     `gorm:"not null"`
	BankCode          string     `gorm:"not null;default:''"`
	DriverNote        string     `gorm:"not null;default:''"`
	Status            int        `gorm:"index;not null"`
	RejectionReason   string     `gorm:"not null;default:''"`
	AdminNote         string     `gorm:"not null;default:''"`
	ProcessedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"not null"`
	ProcessedAt       *time.Time
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	Version           int `gorm:"not null;default:1"`
}

func (WithdrawalDTO) TableName() string {
	return "withdrawals"
}

func fromDomain(w *withdrawal.Withdrawal) WithdrawalDTO {
	s := w.Snapshot()

	var processedBy *uuid.UUID
	if s.ProcessedBy != nil {
		raw := s.ProcessedBy.Bytes()
		processedBy = &raw
	}

	return WithdrawalDTO{
		ID:                s.ID.Bytes(),
		DriverID:          s.DriverID.Bytes(),
		RequestedAmount:   s.RequestedAmount.Int64(),
		ActualAmount:      s.ActualAmount.Int64(),
		SystemFee:         s.SystemFee.Int64(),
		BankAccountName:   s.Account.AccountName,
		BankAccountNumber: s.Account.AccountNumber,
		BankName:          s.Account.BankName,
		BankCode:          s.Account.BankCode,
		DriverNote:        s.DriverNote,
		Status:            int(s.Status),
		RejectionReason:   s.RejectionReason,
		AdminNote:         s.AdminNote,
		ProcessedBy:       processedBy,
		CreatedAt:         s.CreatedAt,
		ProcessedAt:       s.ProcessedAt,
		CompletedAt:       s.CompletedAt,
		CancelledAt:       s.CancelledAt,
		Version:           s.Version,
	}
}

func toDomain(dto WithdrawalDTO) (*withdrawal.Withdrawal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var processedBy *kernel.UUID
	if dto.ProcessedBy != nil {
		adminID, adminErr := kernel.UUIDFromBytes((*dto.ProcessedBy)[:])
		if adminErr != nil {
			return nil, adminErr
		}
		processedBy = &adminID
	}

	return withdrawal.RestoreWithdrawal(withdrawal.Snapshot{
		ID:              id,
		DriverID:        driverID,
		RequestedAmount: kernel.Money(dto.RequestedAmount),
		ActualAmount:    kernel.Money(dto.ActualAmount),
		SystemFee:       kernel.Money(dto.SystemFee),
		Account: withdrawal.BankAccount{
			AccountName:   dto.BankAccountName,
			AccountNumber: dto.BankAccountNumber,
			BankName:      dto.BankName,
			BankCode:      dto.BankCode,
		},
		DriverNote:      dto.DriverNote,
		Status:          withdrawal.Status(dto.Status),
		RejectionReason: dto.RejectionReason,
		AdminNote:       dto.AdminNote,
		ProcessedBy:     processedBy,
		CreatedAt:       dto.CreatedAt,
		ProcessedAt:     dto.ProcessedAt,
		CompletedAt:     dto.CompletedAt,
		CancelledAt:     dto.CancelledAt,
		Version:         dto.Version,
	})
}
