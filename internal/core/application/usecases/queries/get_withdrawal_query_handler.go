package queries

import (
	"context"

	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetWithdrawalQueryHandler struct {
	db *gorm.DB
}

func NewGetWithdrawalQueryHandler(db *gorm.DB) GetWithdrawalQueryHandler {
	return GetWithdrawalQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown ids and, for driver-scoped queries,
// for requests that belong to someone else.
func (h GetWithdrawalQueryHandler) Handle(ctx context.Context, query GetWithdrawalQuery) (WithdrawalView, error) {
	if err := query.Validate(); err != nil {
		return WithdrawalView{}, err
	}

	sqlText := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = ?`
	args := []any{query.WithdrawalID().Bytes()}
	if driverID := query.DriverID(); driverID != nil {
		sqlText += ` AND driver_id = ?`
		args = append(args, driverID.Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return WithdrawalView{}, err
	}

	views, err := collectWithdrawals(rows)
	if err != nil {
		return WithdrawalView{}, err
	}
	if len(views) == 0 {
		return WithdrawalView{}, errs.NewObjectNotFoundError("withdrawal", query.WithdrawalID().String())
	}
	return views[0], nil
}
