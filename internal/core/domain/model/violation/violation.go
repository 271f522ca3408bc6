package violation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
)

// ErrViolationIsNotConstructed is returned when a Violation was not created through NewViolation
// or RestoreViolation.
var ErrViolationIsNotConstructed = errors.New("Violation must be created via NewViolation or RestoreViolation")

// Report is a customer's input for a new violation.
type Report struct {
	ReporterID   kernel.UUID
	DriverID     kernel.UUID
	OrderID      *kernel.UUID
	Type         Type
	Severity     Severity
	Description  string
	EvidenceURLs []string
}

// MaxBanDurationDays is the longest fixed-term ban; longer bans are indefinite (0).
const MaxBanDurationDays = 3650

// Resolution is what an administrator decides when resolving a report.
//
// BanDurationDays is only meaningful with BanDriver; 0 means an indefinite ban.
type Resolution struct {
	Penalty         kernel.Money
	WarningCount    int
	BanDriver       bool
	BanDurationDays int
}

func (r Resolution) Validate() error {
	var warnErr, banErr error
	if r.WarningCount < 0 {
		warnErr = errs.NewValueIsInvalidErrorWithCause("warningCount", fmt.Errorf("%d is negative", r.WarningCount))
	}
	switch {
	case r.BanDurationDays < 0 || (!r.BanDriver && r.BanDurationDays != 0):
		banErr = errs.NewValueIsInvalidErrorWithCause("banDuration",
			fmt.Errorf("%d days is not valid with banDriver=%t", r.BanDurationDays, r.BanDriver))
	case r.BanDurationDays > MaxBanDurationDays:
		banErr = errs.NewValueIsOutOfRangeError("banDuration", r.BanDurationDays, 0, MaxBanDurationDays)
	}
	return errors.Join(r.Penalty.Validate(), warnErr, banErr)
}

// Violation is a report against a driver and its administrative outcome.
type Violation struct {
	kernel.EventRecorder

	id           kernel.UUID
	reporterID   kernel.UUID
	driverID     kernel.UUID
	orderID      *kernel.UUID
	kind         Type
	severity     Severity
	description  string
	evidenceURLs []string
	status       Status
	resolution   Resolution
	adminNotes   string
	handledBy    *kernel.UUID
	createdAt    time.Time
	resolvedAt   *time.Time
	version      int

	isConstructed bool
}

// NewViolation files a Pending report. A driver cannot be reported by themselves.
func NewViolation(id kernel.UUID, r Report, at time.Time) (*Violation, error) {
	var descErr, selfErr error
	if strings.TrimSpace(r.Description) == "" {
		descErr = errs.NewValueIsRequiredError("description")
	}
	if r.ReporterID.IsEqual(r.DriverID) {
		selfErr = errs.NewValueIsInvalidErrorWithCause("driverId", errors.New("reporter and driver are the same user"))
	}

	if err := errors.Join(
		id.Validate(),
		r.ReporterID.Validate(),
		r.DriverID.Validate(),
		r.Type.Validate(),
		r.Severity.Validate(),
		descErr,
		selfErr,
	); err != nil {
		return nil, err
	}

	v := &Violation{
		id:            id,
		reporterID:    r.ReporterID,
		driverID:      r.DriverID,
		orderID:       r.OrderID,
		kind:          r.Type,
		severity:      r.Severity,
		description:   r.Description,
		evidenceURLs:  r.EvidenceURLs,
		status:        Pending,
		createdAt:     at,
		isConstructed: true,
	}
	v.Record(NewStatusChanged(v))
	return v, nil
}

// Snapshot is the full persisted state of a violation.
type Snapshot struct {
	ID         kernel.UUID
	Report     Report
	Status     Status
	Resolution Resolution
	AdminNotes string
	HandledBy  *kernel.UUID
	CreatedAt  time.Time
	ResolvedAt *time.Time
	Version    int
}

func RestoreViolation(s Snapshot) (*Violation, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Report.ReporterID.Validate(),
		s.Report.DriverID.Validate(),
		s.Status.Validate(),
		s.Resolution.Validate(),
	); err != nil {
		return nil, err
	}

	return &Violation{
		id:            s.ID,
		reporterID:    s.Report.ReporterID,
		driverID:      s.Report.DriverID,
		orderID:       s.Report.OrderID,
		kind:          s.Report.Type,
		severity:      s.Report.Severity,
		description:   s.Report.Description,
		evidenceURLs:  s.Report.EvidenceURLs,
		status:        s.Status,
		resolution:    s.Resolution,
		adminNotes:    s.AdminNotes,
		handledBy:     s.HandledBy,
		createdAt:     s.CreatedAt,
		resolvedAt:    s.ResolvedAt,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

func (v *Violation) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrViolationIsNotConstructed
	}
	return nil
}

func (v *Violation) ID() kernel.UUID         { return v.id }
func (v *Violation) ReporterID() kernel.UUID { return v.reporterID }
func (v *Violation) DriverID() kernel.UUID   { return v.driverID }
func (v *Violation) OrderID() *kernel.UUID   { return v.orderID }
func (v *Violation) Type() Type              { return v.kind }
func (v *Violation) Severity() Severity      { return v.severity }
func (v *Violation) Description() string     { return v.description }
func (v *Violation) EvidenceURLs() []string  { return v.evidenceURLs }
func (v *Violation) Status() Status          { return v.status }
func (v *Violation) Resolution() Resolution  { return v.resolution }
func (v *Violation) Penalty() kernel.Money   { return v.resolution.Penalty }
func (v *Violation) WarningCount() int       { return v.resolution.WarningCount }
func (v *Violation) AdminNotes() string      { return v.adminNotes }
func (v *Violation) HandledBy() *kernel.UUID { return v.handledBy }
func (v *Violation) CreatedAt() time.Time    { return v.createdAt }
func (v *Violation) ResolvedAt() *time.Time  { return v.resolvedAt }
func (v *Violation) Version() int            { return v.version }

// Snapshot exports the full state for persistence.
func (v *Violation) Snapshot() Snapshot {
	return Snapshot{
		ID: v.id,
		Report: Report{
			ReporterID:   v.reporterID,
			DriverID:     v.driverID,
			OrderID:      v.orderID,
			Type:         v.kind,
			Severity:     v.severity,
			Description:  v.description,
			EvidenceURLs: v.evidenceURLs,
		},
		Status:     v.status,
		Resolution: v.resolution,
		AdminNotes: v.adminNotes,
		HandledBy:  v.handledBy,
		CreatedAt:  v.createdAt,
		ResolvedAt: v.resolvedAt,
		Version:    v.version,
	}
}

// StartInvestigation moves a Pending report to Investigating.
func (v *Violation) StartInvestigation(adminID kernel.UUID, notes string, at time.Time) error {
	next, err := v.status.TransitionTo(Investigating)
	if err != nil {
		return err
	}

	v.status = next
	v.touch(adminID, notes)
	v.Record(NewStatusChanged(v))
	return nil
}

// ValidateResolve checks that the report can be resolved with r without changing it.
func (v *Violation) ValidateResolve(r Resolution) error {
	if _, err := v.status.TransitionTo(Resolved); err != nil {
		return err
	}
	return r.Validate()
}

// Resolve closes the report with the administrator's decision. A positive penalty must be
// debited from the driver's ledger in the same unit of work; services.Settlement does both.
func (v *Violation) Resolve(adminID kernel.UUID, r Resolution, notes string, at time.Time) error {
	if err := v.ValidateResolve(r); err != nil {
		return err
	}

	v.status = Resolved
	v.resolution = r
	v.resolvedAt = &at
	v.touch(adminID, notes)
	v.Record(NewStatusChanged(v))
	return nil
}

// Dismiss closes the report without consequences for the driver.
func (v *Violation) Dismiss(adminID kernel.UUID, notes string, at time.Time) error {
	next, err := v.status.TransitionTo(Dismissed)
	if err != nil {
		return err
	}

	v.status = next
	v.resolvedAt = &at
	v.touch(adminID, notes)
	v.Record(NewStatusChanged(v))
	return nil
}

func (v *Violation) touch(adminID kernel.UUID, notes string) {
	v.handledBy = &adminID
	if notes != "" {
		v.adminNotes = notes
	}
}
