package ledger

import "settlement/internal/core/domain/model/kernel"

const EventBalanceChanged = "ledger.balance_changed"

type BalanceChanged struct {
	kernel.BaseEvent
	Kind         string       `json:"kind"`
	Amount       kernel.Money `json:"amount"`
	BalanceAfter kernel.Money `json:"balanceAfter"`
	ReferenceID  kernel.UUID  `json:"referenceId"`
}

func NewBalanceChanged(e Entry) BalanceChanged {
	return BalanceChanged{
		BaseEvent:    kernel.NewBaseEvent(EventBalanceChanged, e.DriverID),
		Kind:         e.Kind.String(),
		Amount:       e.SignedAmount(),
		BalanceAfter: e.BalanceAfter,
		ReferenceID:  e.ReferenceID,
	}
}
