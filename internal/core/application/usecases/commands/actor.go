package commands

import (
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"
)

// Actor is the authenticated caller of a command, taken from the request credentials.
type Actor struct {
	ID      kernel.UUID
	IsAdmin bool
}

// CanManage reports whether the actor may change the order: its customer or any admin.
func (a Actor) CanManage(o *order.Order) bool {
	return a.IsAdmin || o.IsOwnedBy(a.ID)
}
