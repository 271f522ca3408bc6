package queries

import (
	"errors"

	"settlement/internal/core/domain/model/violation"
	"settlement/internal/pkg/guard"
)

var ErrListViolationsQueryIsNotConstructed = errors.New(
	"ListViolationsQuery must be created via NewListViolationsQuery constructor",
)

// ListViolationsQuery is the administrator's list of all reports, optionally filtered by status.
type ListViolationsQuery struct {
	status     *violation.Status
	pagination Pagination
	guard      guard.ConstructorGuard
}

func NewListViolationsQuery(status *violation.Status, pagination Pagination) (ListViolationsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListViolationsQuery{}, err
		}
	}
	return ListViolationsQuery{
		status:     status,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListViolationsQuery) Validate() error {
	return q.guard.Validate(ErrListViolationsQueryIsNotConstructed)
}

func (q ListViolationsQuery) Status() *violation.Status { return q.status }
func (q ListViolationsQuery) Pagination() Pagination    { return q.pagination }
