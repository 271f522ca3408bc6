package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads an order with its items and their frozen price breakdowns.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type PriceBreakdownView struct {
	BasePerKm    kernel.Money `json:"basePerKm"`
	DistanceCost kernel.Money `json:"distanceCost"`
	LoadCost     kernel.Money `json:"loadCost"`
	InsuranceFee kernel.Money `json:"insuranceFee"`
	Total        kernel.Money `json:"total"`
}

type OrderItemView struct {
	ID             kernel.UUID        `json:"id"`
	VehicleType    string             `json:"vehicleType"`
	WeightKg       float64            `json:"weightKg"`
	DistanceKm     float64            `json:"distanceKm"`
	LoadingService bool               `json:"loadingService"`
	Insurance      bool               `json:"insurance"`
	Price          PriceBreakdownView `json:"priceBreakdown"`
	Status         string             `json:"status"`
	DriverID       *kernel.UUID       `json:"driverId,omitempty"`
	AcceptedAt     *time.Time         `json:"acceptedAt,omitempty"`
	PickedUpAt     *time.Time         `json:"pickedUpAt,omitempty"`
	DeliveringAt   *time.Time         `json:"deliveringAt,omitempty"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time         `json:"cancelledAt,omitempty"`
	CancelReason   string             `json:"cancelReason,omitempty"`
}

type OrderView struct {
	ID         kernel.UUID     `json:"id"`
	CustomerID kernel.UUID     `json:"customerId"`
	TotalPrice kernel.Money    `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	Items      []OrderItemView `json:"items"`
}

// HasDriver reports whether driverID is assigned to any item of the order.
func (v OrderView) HasDriver(driverID kernel.UUID) bool {
	for _, item := range v.Items {
		if item.DriverID != nil && item.DriverID.IsEqual(driverID) {
			return true
		}
	}
	return false
}
