package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetMyViolationReportsQueryIsNotConstructed = errors.New(
	"GetMyViolationReportsQuery must be created via NewGetMyViolationReportsQuery constructor",
)

// GetMyViolationReportsQuery lists the reports filed by one reporter, newest first.
type GetMyViolationReportsQuery struct {
	reporterID kernel.UUID
	pagination Pagination
	guard      guard.ConstructorGuard
}

func NewGetMyViolationReportsQuery(reporterID kernel.UUID, pagination Pagination) (GetMyViolationReportsQuery, error) {
	if err := reporterID.Validate(); err != nil {
		return GetMyViolationReportsQuery{}, err
	}
	return GetMyViolationReportsQuery{
		reporterID: reporterID,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetMyViolationReportsQuery) Validate() error {
	return q.guard.Validate(ErrGetMyViolationReportsQueryIsNotConstructed)
}

func (q GetMyViolationReportsQuery) ReporterID() kernel.UUID { return q.reporterID }
func (q GetMyViolationReportsQuery) Pagination() Pagination  { return q.pagination }
