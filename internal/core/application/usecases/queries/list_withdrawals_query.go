package queries

import (
	"errors"

	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/guard"
)

var ErrListWithdrawalsQueryIsNotConstructed = errors.New(
	"ListWithdrawalsQuery must be created via NewListWithdrawalsQuery constructor",
)

// ListWithdrawalsQuery is the administrator's view of all requests, optionally filtered
// by status, newest first.
type ListWithdrawalsQuery struct {
	status     *withdrawal.Status
	pagination Pagination
	guard      guard.ConstructorGuard
}

// NewListWithdrawalsQuery accepts a nil status for "all statuses".
func NewListWithdrawalsQuery(status *withdrawal.Status, pagination Pagination) (ListWithdrawalsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListWithdrawalsQuery{}, err
		}
	}
	return ListWithdrawalsQuery{
		status:     status,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListWithdrawalsQuery) Validate() error {
	return q.guard.Validate(ErrListWithdrawalsQueryIsNotConstructed)
}

func (q ListWithdrawalsQuery) Status() *withdrawal.Status { return q.status }
func (q ListWithdrawalsQuery) Pagination() Pagination     { return q.pagination }
