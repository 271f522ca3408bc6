package withdrawal

import "settlement/internal/core/domain/model/kernel"

const EventStatusChanged = "withdrawal.status_changed"

type StatusChanged struct {
	kernel.BaseEvent
	DriverID        kernel.UUID  `json:"driverId"`
	Status          string       `json:"status"`
	RequestedAmount kernel.Money `json:"requestedAmount"`
	ActualAmount    kernel.Money `json:"actualAmount"`
	SystemFee       kernel.Money `json:"systemFee"`
}

func NewStatusChanged(w *Withdrawal) StatusChanged {
	return StatusChanged{
		BaseEvent:       kernel.NewBaseEvent(EventStatusChanged, w.id),
		DriverID:        w.driverID,
		Status:          w.status.String(),
		RequestedAmount: w.requestedAmount,
		ActualAmount:    w.actualAmount,
		SystemFee:       w.systemFee,
	}
}
