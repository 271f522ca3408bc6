package queries

import (
	"database/sql"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
)

// WithdrawalView is the read model of a withdrawal request shared by driver and admin queries.
type WithdrawalView struct {
	ID                kernel.UUID  `json:"id"`
	DriverID          kernel.UUID  `json:"driverId"`
	RequestedAmount   kernel.Money `json:"requestedAmount"`
	ActualAmount      kernel.Money `json:"actualAmount"`
	SystemFee         kernel.Money `json:"systemFee"`
	BankAccountName   string       `json:"bankAccountName"`
	BankAccountNumber string       `json:"bankAccountNumber"`
	BankName          string       `json:"bankName"`
	BankCode          string       `json:"bankCode,omitempty"`
	DriverNote        string       `json:"driverNote,omitempty"`
	Status            string       `json:"status"`
	RejectionReason   string       `json:"rejectionReason,omitempty"`
	AdminNote         string       `json:"adminNote,omitempty"`
	ProcessedBy       *kernel.UUID `json:"processedBy,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	ProcessedAt       *time.Time   `json:"processedAt,omitempty"`
	CompletedAt       *time.Time   `json:"completedAt,omitempty"`
	CancelledAt       *time.Time   `json:"cancelledAt,omitempty"`
}

const withdrawalColumns = `
	id,
	driver_id,
	requested_amount,
	actual_amount,
	system_fee,
	bank_account_name,
	bank_account_number,
	bank_name,
	bank_code,
	driver_note,
	status,
	rejection_reason,
	admin_note,
	processed_by,
	created_at,
	processed_at,
	completed_at,
	cancelled_at`

func scanWithdrawal(rows *sql.Rows) (WithdrawalView, error) {
	var view WithdrawalView
	var id, driverID uuid.UUID
	var processedBy uuid.NullUUID
	var requested, actual, fee int64
	var status int

	if err := rows.Scan(
		&id,
		&driverID,
		&requested,
		&actual,
		&fee,
		&view.BankAccountName,
		&view.BankAccountNumber,
		&view.BankName,
		&view.BankCode,
		&view.DriverNote,
		&status,
		&view.RejectionReason,
		&view.AdminNote,
		&processedBy,
		&view.CreatedAt,
		&view.ProcessedAt,
		&view.CompletedAt,
		&view.CancelledAt,
	); err != nil {
		return WithdrawalView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return WithdrawalView{}, err
	}
	if view.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return WithdrawalView{}, err
	}
	if processedBy.Valid {
		adminID, adminErr := kernel.UUIDFromBytes(processedBy.UUID[:])
		if adminErr != nil {
			return WithdrawalView{}, adminErr
		}
		view.ProcessedBy = &adminID
	}
	view.RequestedAmount = kernel.Money(requested)
	view.ActualAmount = kernel.Money(actual)
	view.SystemFee = kernel.Money(fee)
	view.Status = withdrawal.Status(status).String()
	return view, nil
}

func collectWithdrawals(rows *sql.Rows) ([]WithdrawalView, error) {
	defer rows.Close()

	views := make([]WithdrawalView, 0)
	for rows.Next() {
		view, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
