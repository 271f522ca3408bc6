package queries

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"

	"gorm.io/gorm"
)

type GetWithdrawalStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetWithdrawalStatsQueryHandler(db *gorm.DB) GetWithdrawalStatsQueryHandler {
	return GetWithdrawalStatsQueryHandler{db: db}
}

// Handle returns zeroed totals for statuses without requests.
func (h GetWithdrawalStatsQueryHandler) Handle(ctx context.Context, query GetWithdrawalStatsQuery) (WithdrawalStats, error) {
	if err := query.Validate(); err != nil {
		return WithdrawalStats{}, err
	}

	stats := WithdrawalStats{ByStatus: make(map[string]StatusTotals)}
	for _, status := range withdrawal.AllStatuses() {
		stats.ByStatus[status.String()] = StatusTotals{}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(requested_amount), 0),
			COALESCE(SUM(actual_amount), 0),
			COALESCE(SUM(system_fee), 0)
		FROM withdrawals
		GROUP BY status
	`).Rows()
	if err != nil {
		return WithdrawalStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count, requested, actual, fee int64
		if err = rows.Scan(&status, &count, &requested, &actual, &fee); err != nil {
			return WithdrawalStats{}, err
		}

		totals := StatusTotals{
			Count:           count,
			RequestedAmount: kernel.Money(requested),
			ActualAmount:    kernel.Money(actual),
			SystemFee:       kernel.Money(fee),
		}
		stats.ByStatus[withdrawal.Status(status).String()] = totals
		stats.Total.Count += count
		stats.Total.RequestedAmount += totals.RequestedAmount
		stats.Total.ActualAmount += totals.ActualAmount
		stats.Total.SystemFee += totals.SystemFee
	}

	if err = rows.Err(); err != nil {
		return WithdrawalStats{}, err
	}
	return stats, nil
}
