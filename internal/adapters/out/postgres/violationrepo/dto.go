// Package violationrepo persists violation reports against drivers.
package violationrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ViolationDTO mirrors the violations table. The two partial unique indexes keep one report
// per (reporter, driver, order), and one open report per (reporter, driver) without order.
type ViolationDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ReporterID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_violations_reporter_driver_order,where:order_id IS NOT NULL;uniqueIndex:uq_violations_reporter_driver_open,where:order_id IS NULL AND status IN (1, 2)"`
	DriverID        uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uq_violations_reporter_driver_order;uniqueIndex:uq_violations_reporter_driver_open"`
	OrderID         *uuid.UUID     `gorm:"type:uuid;uniqueIndex:uq_violations_reporter_driver_order"`
	Type            int            `gorm:"not null"`
	Severity        int            `gorm:"not null"`
	Description     string         `gorm:"not null"`
	EvidenceURLs    pq.StringArray `gorm:"column:evidence_urls;type:text[];not null;default:'{}'"`
	Status          int            `gorm:"index;not null"`
	Penalty         int64          `gorm:"not null;default:0"`
	WarningCount    int            `gorm:"not null;default:0"`
	BanDriver       bool           `gorm:"not null;default:false"`
	BanDurationDays int            `gorm:"not null;default:0"`
	AdminNotes      string         `gorm:"not null;default:''"`
	HandledBy       *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"not null"`
	ResolvedAt      *time.Time
	Version         int `gorm:"not null;default:1"`
}

func (ViolationDTO) TableName() string {
	return "violations"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(v *violation.Violation) ViolationDTO {
	s := v.Snapshot()
	evidence := pq.StringArray(s.Report.EvidenceURLs)
	if evidence == nil {
		evidence = pq.StringArray{}
	}

	return ViolationDTO{
		ID:              s.ID.Bytes(),
		ReporterID:      s.Report.ReporterID.Bytes(),
		DriverID:        s.Report.DriverID.Bytes(),
		OrderID:         optionalBytes(s.Report.OrderID),
		Type:            int(s.Report.Type),
		Severity:        int(s.Report.Severity),
		Description:     s.Report.Description,
		EvidenceURLs:    evidence,
		Status:          int(s.Status),
		Penalty:         s.Resolution.Penalty.Int64(),
		WarningCount:    s.Resolution.WarningCount,
		BanDriver:       s.Resolution.BanDriver,
		BanDurationDays: s.Resolution.BanDurationDays,
		AdminNotes:      s.AdminNotes,
		HandledBy:       optionalBytes(s.HandledBy),
		CreatedAt:       s.CreatedAt,
		ResolvedAt:      s.ResolvedAt,
		Version:         s.Version,
	}
}

func toDomain(dto ViolationDTO) (*violation.Violation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	reporterID, err := kernel.UUIDFromBytes(dto.ReporterID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := optionalUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	handledBy, err := optionalUUID(dto.HandledBy)
	if err != nil {
		return nil, err
	}

	return violation.RestoreViolation(violation.Snapshot{
		ID: id,
		Report: violation.Report{
			ReporterID:   reporterID,
			DriverID:     driverID,
			OrderID:      orderID,
			Type:         violation.Type(dto.Type),
			Severity:     violation.Severity(dto.Severity),
			Description:  dto.Description,
			EvidenceURLs: []string(dto.EvidenceURLs),
		},
		Status: violation.Status(dto.Status),
		Resolution: violation.Resolution{
			Penalty:         kernel.Money(dto.Penalty),
			WarningCount:    dto.WarningCount,
			BanDriver:       dto.BanDriver,
			BanDurationDays: dto.BanDurationDays,
		},
		AdminNotes: dto.AdminNotes,
		HandledBy:  handledBy,
		CreatedAt:  dto.CreatedAt,
		ResolvedAt: dto.ResolvedAt,
		Version:    dto.Version,
	})
}
