package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var ErrReportViolationCommandIsNotConstructed = errors.New(
	"ReportViolationCommand must be created via NewReportViolationCommand constructor",
)

// ReportViolationCommand files a customer's report against a driver.
type ReportViolationCommand struct { //nolint:recvcheck //using for validation
	violationID kernel.UUID
	report      violation.Report

	guard guard.ConstructorGuard
}

func NewReportViolationCommand(violationID kernel.UUID, report violation.Report) (ReportViolationCommand, error) {
	var reporterErr, driverErr error
	if err := report.ReporterID.Validate(); err != nil {
		reporterErr = errs.NewValueIsRequiredErrorWithCause("reporterId", err)
	}
	if err := report.DriverID.Validate(); err != nil {
		driverErr = errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	if err := errors.Join(violationID.Validate(), reporterErr, driverErr); err != nil {
		return ReportViolationCommand{}, err
	}

	return ReportViolationCommand{
		violationID: violationID,
		report:      report,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReportViolationCommand) Validate() error {
	return c.guard.Validate(ErrReportViolationCommandIsNotConstructed)
}

func (c ReportViolationCommand) ViolationID() kernel.UUID { return c.violationID }
func (c ReportViolationCommand) Report() violation.Report { return c.report }
