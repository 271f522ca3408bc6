package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetDriverWithdrawalsQueryIsNotConstructed = errors.New(
	"GetDriverWithdrawalsQuery must be created via NewGetDriverWithdrawalsQuery constructor",
)

// GetDriverWithdrawalsQuery lists one driver's withdrawal history, newest first.
type GetDriverWithdrawalsQuery struct {
	driverID   kernel.UUID
	pagination Pagination
	guard      guard.ConstructorGuard
}

func NewGetDriverWithdrawalsQuery(driverID kernel.UUID, pagination Pagination) (GetDriverWithdrawalsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverWithdrawalsQuery{}, err
	}
	return GetDriverWithdrawalsQuery{
		driverID:   driverID,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverWithdrawalsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverWithdrawalsQueryIsNotConstructed)
}

func (q GetDriverWithdrawalsQuery) DriverID() kernel.UUID  { return q.driverID }
func (q GetDriverWithdrawalsQuery) Pagination() Pagination { return q.pagination }
