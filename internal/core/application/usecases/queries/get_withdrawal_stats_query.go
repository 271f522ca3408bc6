package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetWithdrawalStatsQueryIsNotConstructed = errors.New(
	"GetWithdrawalStatsQuery must be created via NewGetWithdrawalStatsQuery constructor",
)

// GetWithdrawalStatsQuery aggregates withdrawal counts and amounts per status.
type GetWithdrawalStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetWithdrawalStatsQuery() GetWithdrawalStatsQuery {
	return GetWithdrawalStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetWithdrawalStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetWithdrawalStatsQueryIsNotConstructed)
}

// StatusTotals is the count and summed amounts of the requests in one status.
type StatusTotals struct {
	Count           int64        `json:"count"`
	RequestedAmount kernel.Money `json:"requestedAmount"`
	ActualAmount    kernel.Money `json:"actualAmount"`
	SystemFee       kernel.Money `json:"systemFee"`
}

// WithdrawalStats holds StatusTotals for every status, keyed by status name, plus the
// overall totals.
type WithdrawalStats struct {
	ByStatus map[string]StatusTotals `json:"byStatus"`
	Total    StatusTotals            `json:"total"`
}
