package http

import (
	"net/http"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"

	"github.com/labstack/echo/v4"
)

type ViolationReportRequest struct {
	DriverID      string   `json:"driverId"      validate:"required,uuid"`
	OrderID       string   `json:"orderId"       validate:"omitempty,uuid"`
	ViolationType string   `json:"violationType" validate:"required"`
	Severity      string   `json:"severity"      validate:"required"`
	Description   string   `json:"description"   validate:"required,max=2000"`
	EvidenceURLs  []string `json:"evidenceUrls"  validate:"max=10,dive,url"`
}

func (r ViolationReportRequest) toReport(reporterID kernel.UUID) (violation.Report, error) {
	driverID, err := kernel.UUIDFromString(r.DriverID)
	if err != nil {
		return violation.Report{}, err
	}
	var orderID *kernel.UUID
	if r.OrderID != "" {
		id, parseErr := kernel.UUIDFromString(r.OrderID)
		if parseErr != nil {
			return violation.Report{}, parseErr
		}
		orderID = &id
	}
	kind, err := violation.TypeFromString(r.ViolationType)
	if err != nil {
		return violation.Report{}, err
	}
	severity, err := violation.SeverityFromString(r.Severity)
	if err != nil {
		return violation.Report{}, err
	}
	return violation.Report{
		ReporterID:   reporterID,
		DriverID:     driverID,
		OrderID:      orderID,
		Type:         kind,
		Severity:     severity,
		Description:  r.Description,
		EvidenceURLs: r.EvidenceURLs,
	}, nil
}

type ViolationStatusRequest struct {
	Status       string `json:"status"       validate:"required"`
	Penalty      int64  `json:"penalty"      validate:"gte=0"`
	WarningCount int    `json:"warningCount" validate:"gte=0"`
	BanDriver    bool   `json:"banDriver"`
	BanDuration  int    `json:"banDuration"  validate:"gte=0,lte=3650"`
	AdminNotes   string `json:"adminNotes"   validate:"max=2000"`
}

// ReportViolation handles POST /api/violations/report.
func (s *Server) ReportViolation(c echo.Context) error {
	var req ViolationReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	report, err := req.toReport(principalFrom(c).ID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReportViolationCommand(kernel.NewUUID(), report)
	if err != nil {
		return err
	}
	v, err := s.handlers.ReportViolation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, violationView(v), "Violation reported")
}

// GetMyViolationReports handles GET /api/violations/my-reports.
func (s *Server) GetMyViolationReports(c echo.Context) error {
	pagination, err := queryPagination(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetMyViolationReportsQuery(principalFrom(c).ID, pagination)
	if err != nil {
		return err
	}
	result, err := s.handlers.GetMyViolationReports.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return page(c, result)
}

// ListViolations handles GET /api/violations/admin/all.
func (s *Server) ListViolations(c echo.Context) error {
	status, err := queryViolationStatus(c)
	if err != nil {
		return err
	}
	pagination, err := queryPagination(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListViolationsQuery(status, pagination)
	if err != nil {
		return err
	}
	result, err := s.handlers.ListViolations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return page(c, result)
}

// ChangeViolationStatus handles PUT /api/violations/admin/:id/status. Penalty, warnings
// and the ban only apply when the report is resolved.
func (s *Server) ChangeViolationStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ViolationStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := violation.StatusFromString(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeViolationStatusCommand(id, principalFrom(c).ID, status,
		violation.Resolution{
			Penalty:         kernel.Money(req.Penalty),
			WarningCount:    req.WarningCount,
			BanDriver:       req.BanDriver,
			BanDurationDays: req.BanDuration,
		}, req.AdminNotes)
	if err != nil {
		return err
	}
	v, err := s.handlers.ChangeViolationStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, violationView(v), "Violation "+v.Status().String())
}
