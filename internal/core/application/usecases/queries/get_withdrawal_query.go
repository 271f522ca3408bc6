package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetWithdrawalQueryIsNotConstructed = errors.New(
	"GetWithdrawalQuery must be created via NewGetWithdrawalQuery or NewGetDriverWithdrawalQuery constructor",
)

// GetWithdrawalQuery reads one withdrawal. When scoped to a driver, requests of other
// drivers are reported as not found.
type GetWithdrawalQuery struct {
	withdrawalID kernel.UUID
	driverID     *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewGetWithdrawalQuery builds the unscoped administrator read.
func NewGetWithdrawalQuery(withdrawalID kernel.UUID) (GetWithdrawalQuery, error) {
	if err := withdrawalID.Validate(); err != nil {
		return GetWithdrawalQuery{}, err
	}
	return GetWithdrawalQuery{
		withdrawalID: withdrawalID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewGetDriverWithdrawalQuery builds a read limited to driverID's own requests.
func NewGetDriverWithdrawalQuery(withdrawalID, driverID kernel.UUID) (GetWithdrawalQuery, error) {
	if err := errors.Join(withdrawalID.Validate(), driverID.Validate()); err != nil {
		return GetWithdrawalQuery{}, err
	}
	return GetWithdrawalQuery{
		withdrawalID: withdrawalID,
		driverID:     &driverID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetWithdrawalQuery) Validate() error {
	return q.guard.Validate(ErrGetWithdrawalQueryIsNotConstructed)
}

func (q GetWithdrawalQuery) WithdrawalID() kernel.UUID { return q.withdrawalID }
func (q GetWithdrawalQuery) DriverID() *kernel.UUID    { return q.driverID }
