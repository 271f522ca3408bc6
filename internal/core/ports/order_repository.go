package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its items.
	// The update is conditioned on the version the order was loaded with; a concurrent
	// change makes it fail with errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all of its items.
	// Returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding transaction ends,
	// which serializes concurrent transitions of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
