// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling the
// conversion between the order with its items and the orders/order_items tables.
package orderrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// OrderDTO represents the orders table. Version is the optimistic concurrency counter.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	TotalPrice int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	Version    int       `gorm:"not null;default:1"`
	Items      []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one row of order_items. The frozen price breakdown is stored
// column by column so read models can aggregate it in SQL.
type ItemDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	Position       int        `gorm:"not null"`
	VehicleType    int        `gorm:"not null"`
	WeightKg       float64    `gorm:"not null"`
	DistanceKm     float64    `gorm:"not null"`
	LoadingService bool       `gorm:"not null"`
	Insurance      bool       `gorm:"not null"`
	BasePerKm      int64      `gorm:"not null"`
	DistanceCost   int64      `gorm:"not null"`
	LoadCost       int64      `gorm:"not null"`
	InsuranceFee   int64      `gorm:"not null"`
	Total          int64      `gorm:"not null"`
	Status         int        `gorm:"index;not null"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	AcceptedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveringAt   *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"not null;default:''"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]ItemDTO, 0, len(o.Items()))
	for pos, item := range o.Items() {
		items = append(items, itemFromDomain(orderID, pos, item))
	}

	return OrderDTO{
		ID:         orderID,
		CustomerID: o.CustomerID().Bytes(),
		TotalPrice: o.TotalPrice().Int64(),
		CreatedAt:  o.CreatedAt(),
		Version:    o.Version(),
		Items:      items,
	}
}

func itemFromDomain(orderID uuid.UUID, pos int, item *order.Item) ItemDTO {
	var driverID *uuid.UUID
	if id := item.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	price := item.Price()
	return ItemDTO{
		ID:             item.ID().Bytes(),
		OrderID:        orderID,
		Position:       pos,
		VehicleType:    int(item.VehicleType()),
		WeightKg:       item.WeightKg(),
		DistanceKm:     item.DistanceKm(),
		LoadingService: item.LoadingService(),
		Insurance:      item.Insurance(),
		BasePerKm:      price.BasePerKm().Int64(),
		DistanceCost:   price.DistanceCost().Int64(),
		LoadCost:       price.LoadCost().Int64(),
		InsuranceFee:   price.InsuranceFee().Int64(),
		Total:          price.Total().Int64(),
		Status:         int(item.Status()),
		DriverID:       driverID,
		AcceptedAt:     item.AcceptedAt(),
		PickedUpAt:     item.PickedUpAt(),
		DeliveringAt:   item.DeliveringAt(),
		DeliveredAt:    item.DeliveredAt(),
		CancelledAt:    item.CancelledAt(),
		CancelReason:   item.CancelReason(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder; items must be ordered by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, items, kernel.Money(dto.TotalPrice), dto.CreatedAt, dto.Version)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	price, err := pricing.RestorePriceBreakdown(
		kernel.Money(dto.BasePerKm),
		kernel.Money(dto.DistanceCost),
		kernel.Money(dto.LoadCost),
		kernel.Money(dto.InsuranceFee),
		kernel.Money(dto.Total),
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(order.ItemSnapshot{
		ID: id,
		Spec: order.ItemSpec{
			VehicleType:    order.VehicleType(dto.VehicleType),
			WeightKg:       dto.WeightKg,
			DistanceKm:     dto.DistanceKm,
			LoadingService: dto.LoadingService,
			Insurance:      dto.Insurance,
			InsuranceFee:   kernel.Money(dto.InsuranceFee),
		},
		Price:        price,
		Status:       order.Status(dto.Status),
		DriverID:     driverID,
		AcceptedAt:   dto.AcceptedAt,
		PickedUpAt:   dto.PickedUpAt,
		DeliveringAt: dto.DeliveringAt,
		DeliveredAt:  dto.DeliveredAt,
		CancelledAt:  dto.CancelledAt,
		CancelReason: dto.CancelReason,
	})
}
