package queries

import (
	"database/sql"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ViolationView struct {
	ID              kernel.UUID  `json:"id"`
	ReporterID      kernel.UUID  `json:"reporterId"`
	DriverID        kernel.UUID  `json:"driverId"`
	OrderID         *kernel.UUID `json:"orderId,omitempty"`
	Type            string       `json:"violationType"`
	Severity        string       `json:"severity"`
	Description     string       `json:"description"`
	EvidenceURLs    []string     `json:"evidenceUrls"`
	Status          string       `json:"status"`
	Penalty         kernel.Money `json:"penalty"`
	WarningCount    int          `json:"warningCount"`
	BanDriver       bool         `json:"banDriver"`
	BanDurationDays int          `json:"banDuration"`
	AdminNotes      string       `json:"adminNotes,omitempty"`
	HandledBy       *kernel.UUID `json:"handledBy,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	ResolvedAt      *time.Time   `json:"resolvedAt,omitempty"`
}

const violationColumns = `
	id,
	reporter_id,
	driver_id,
	order_id,
	type,
	severity,
	description,
	evidence_urls,
	status,
	penalty,
	warning_count,
	ban_driver,
	ban_duration_days,
	admin_notes,
	handled_by,
	created_at,
	resolved_at`

func optionalID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil //nolint:nilnil // column is NULL
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func scanViolation(rows *sql.Rows) (ViolationView, error) {
	var view ViolationView
	var id, reporterID, driverID uuid.UUID
	var orderID, handledBy uuid.NullUUID
	var kind, severity, status int
	var penalty int64
	var evidence pq.StringArray

	if err := rows.Scan(
		&id,
		&reporterID,
		&driverID,
		&orderID,
		&kind,
		&severity,
		&view.Description,
		&evidence,
		&status,
		&penalty,
		&view.WarningCount,
		&view.BanDriver,
		&view.BanDurationDays,
		&view.AdminNotes,
		&handledBy,
		&view.CreatedAt,
		&view.ResolvedAt,
	); err != nil {
		return ViolationView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ViolationView{}, err
	}
	if view.ReporterID, err = kernel.UUIDFromBytes(reporterID[:]); err != nil {
		return ViolationView{}, err
	}
	if view.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return ViolationView{}, err
	}
	if view.OrderID, err = optionalID(orderID); err != nil {
		return ViolationView{}, err
	}
	if view.HandledBy, err = optionalID(handledBy); err != nil {
		return ViolationView{}, err
	}

	view.Type = violation.Type(kind).String()
	view.Severity = violation.Severity(severity).String()
	view.Status = violation.Status(status).String()
	view.Penalty = kernel.Money(penalty)
	view.EvidenceURLs = []string(evidence)
	if view.EvidenceURLs == nil {
		view.EvidenceURLs = []string{}
	}
	return view, nil
}

func collectViolations(rows *sql.Rows) ([]ViolationView, error) {
	defer rows.Close()

	views := make([]ViolationView, 0)
	for rows.Next() {
		view, err := scanViolation(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
