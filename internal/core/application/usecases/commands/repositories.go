// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"settlement/internal/core/ports"
)

// ErrForbidden is returned when the acting user may not perform the operation on the
// target aggregate (for example another customer's order).
var ErrForbidden = errors.New("operation is not allowed for this user")

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	WithdrawalRepoFactory interface {
		WithdrawalRepository() ports.WithdrawalRepository
	}

	ViolationRepoFactory interface {
		ViolationRepository() ports.ViolationRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW changes an order and a driver's ledger atomically.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		LedgerRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// WithdrawalUoW changes a withdrawal request and, on settlement, the driver's ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   w, err := uow.WithdrawalRepository().GetForUpdate(ctx, id)
	//   l, err := uow.LedgerRepository().GetForUpdate(ctx, w.DriverID())
	//   // ... settle
	//
	//   err = uow.Commit(ctx)
	WithdrawalUoW interface {
		TxManager
		WithdrawalRepoFactory
		LedgerRepoFactory
	}

	WithdrawalUoWFactory interface {
		Create() WithdrawalUoW
	}

	// ViolationUoW changes a violation report and, when a penalty applies, the driver's ledger.
	ViolationUoW interface {
		TxManager
		ViolationRepoFactory
		LedgerRepoFactory
	}

	ViolationUoWFactory interface {
		Create() ViolationUoW
	}
)
