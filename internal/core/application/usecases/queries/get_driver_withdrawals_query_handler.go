package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetDriverWithdrawalsQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverWithdrawalsQueryHandler(db *gorm.DB) GetDriverWithdrawalsQueryHandler {
	return GetDriverWithdrawalsQueryHandler{db: db}
}

func (h GetDriverWithdrawalsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverWithdrawalsQuery,
) (Page[WithdrawalView], error) {
	if err := query.Validate(); err != nil {
		return Page[WithdrawalView]{}, err
	}

	db := h.db.WithContext(ctx)
	driverID := query.DriverID().Bytes()
	p := query.Pagination()

	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM withdrawals WHERE driver_id = ?`, driverID).Scan(&total).Error; err != nil {
		return Page[WithdrawalView]{}, err
	}

	rows, err := db.Raw(`
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE driver_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, driverID, p.Limit, p.Offset()).Rows()
	if err != nil {
		return Page[WithdrawalView]{}, err
	}

	items, err := collectWithdrawals(rows)
	if err != nil {
		return Page[WithdrawalView]{}, err
	}
	return Page[WithdrawalView]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
