package queries

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown orders. Items keep their insertion order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	var header struct {
		CustomerID uuid.UUID
		TotalPrice int64
		CreatedAt  time.Time
	}
	result := db.Raw(`SELECT customer_id, total_price, created_at FROM orders WHERE id = ?`, orderID).Scan(&header)
	if result.Error != nil {
		return OrderView{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	customerID, err := kernel.UUIDFromBytes(header.CustomerID[:])
	if err != nil {
		return OrderView{}, err
	}
	view := OrderView{
		ID:         query.OrderID(),
		CustomerID: customerID,
		TotalPrice: kernel.Money(header.TotalPrice),
		CreatedAt:  header.CreatedAt,
		Items:      make([]OrderItemView, 0),
	}

	rows, err := db.Raw(`
		SELECT
			id,
			vehicle_type,
			weight_kg,
			distance_km,
			loading_service,
			insurance,
			base_per_km,
			distance_cost,
			load_cost,
			insurance_fee,
			total,
			status,
			driver_id,
			accepted_at,
			picked_up_at,
			delivering_at,
			delivered_at,
			cancelled_at,
			cancel_reason
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemView
		var id uuid.UUID
		var driverID uuid.NullUUID
		var vehicleType, status int
		var basePerKm, distanceCost, loadCost, insuranceFee, total int64

		if err = rows.Scan(
			&id,
			&vehicleType,
			&item.WeightKg,
			&item.DistanceKm,
			&item.LoadingService,
			&item.Insurance,
			&basePerKm,
			&distanceCost,
			&loadCost,
			&insuranceFee,
			&total,
			&status,
			&driverID,
			&item.AcceptedAt,
			&item.PickedUpAt,
			&item.DeliveringAt,
			&item.DeliveredAt,
			&item.CancelledAt,
			&item.CancelReason,
		); err != nil {
			return OrderView{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return OrderView{}, err
		}
		if item.DriverID, err = optionalID(driverID); err != nil {
			return OrderView{}, err
		}
		item.VehicleType = order.VehicleType(vehicleType).String()
		item.Status = order.Status(status).String()
		item.Price = PriceBreakdownView{
			BasePerKm:    kernel.Money(basePerKm),
			DistanceCost: kernel.Money(distanceCost),
			LoadCost:     kernel.Money(loadCost),
			InsuranceFee: kernel.Money(insuranceFee),
			Total:        kernel.Money(total),
		}
		view.Items = append(view.Items, item)
	}

	if err = rows.Err(); err != nil {
		return OrderView{}, err
	}
	return view, nil
}
