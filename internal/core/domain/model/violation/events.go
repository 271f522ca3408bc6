package violation

import "settlement/internal/core/domain/model/kernel"

const EventStatusChanged = "violation.status_changed"

type StatusChanged struct {
	kernel.BaseEvent
	DriverID        kernel.UUID  `json:"driverId"`
	Status          string       `json:"status"`
	Severity        string       `json:"severity"`
	Penalty         kernel.Money `json:"penalty"`
	WarningCount    int          `json:"warningCount"`
	BanDriver       bool         `json:"banDriver"`
	BanDurationDays int          `json:"banDurationDays"`
}

func NewStatusChanged(v *Violation) StatusChanged {
	return StatusChanged{
		BaseEvent:       kernel.NewBaseEvent(EventStatusChanged, v.id),
		DriverID:        v.driverID,
		Status:          v.status.String(),
		Severity:        v.severity.String(),
		Penalty:         v.resolution.Penalty,
		WarningCount:    v.resolution.WarningCount,
		BanDriver:       v.resolution.BanDriver,
		BanDurationDays: v.resolution.BanDurationDays,
	}
}
