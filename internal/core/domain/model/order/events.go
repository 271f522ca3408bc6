package order

import (
	"settlement/internal/core/domain/model/kernel"
)

const (
	EventOrderCreated      = "order.created"
	EventItemSetChanged    = "order.items_changed"
	EventItemStatusChanged = "order.item_status_changed"
	EventItemDelivered     = "order.item_delivered"
)

type OrderCreated struct {
	kernel.BaseEvent
	CustomerID kernel.UUID  `json:"customerId"`
	TotalPrice kernel.Money `json:"totalPrice"`
	ItemCount  int          `json:"itemCount"`
}

func NewOrderCreated(o *Order) OrderCreated {
	return OrderCreated{
		BaseEvent:  kernel.NewBaseEvent(EventOrderCreated, o.id),
		CustomerID: o.customerID,
		TotalPrice: o.totalPrice,
		ItemCount:  len(o.items),
	}
}

type ItemSetChanged struct {
	kernel.BaseEvent
	ItemID     kernel.UUID  `json:"itemId"`
	Change     string       `json:"change"`
	TotalPrice kernel.Money `json:"totalPrice"`
}

func NewItemSetChanged(o *Order, itemID kernel.UUID, change string) ItemSetChanged {
	return ItemSetChanged{
		BaseEvent:  kernel.NewBaseEvent(EventItemSetChanged, o.id),
		ItemID:     itemID,
		Change:     change,
		TotalPrice: o.totalPrice,
	}
}

type ItemStatusChanged struct {
	kernel.BaseEvent
	ItemID   kernel.UUID  `json:"itemId"`
	Status   string       `json:"status"`
	DriverID *kernel.UUID `json:"driverId,omitempty"`
}

func NewItemStatusChanged(o *Order, item *Item) ItemStatusChanged {
	return ItemStatusChanged{
		BaseEvent: kernel.NewBaseEvent(EventItemStatusChanged, o.id),
		ItemID:    item.id,
		Status:    item.status.String(),
		DriverID:  item.driverID,
	}
}

// ItemDelivered is recorded when an item reaches Delivered; Payout is the amount credited
// to the driver's ledger.
type ItemDelivered struct {
	kernel.BaseEvent
	ItemID   kernel.UUID  `json:"itemId"`
	DriverID kernel.UUID  `json:"driverId"`
	Total    kernel.Money `json:"total"`
	Payout   kernel.Money `json:"payout"`
}

func NewItemDelivered(o *Order, item *Item, payout kernel.Money) ItemDelivered {
	return ItemDelivered{
		BaseEvent: kernel.NewBaseEvent(EventItemDelivered, o.id),
		ItemID:    item.id,
		DriverID:  *item.driverID,
		Total:     item.price.Total(),
		Payout:    payout,
	}
}
