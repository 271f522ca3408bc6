package commands_test

import (
	"context"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) GetForUpdate(ctx context.Context, driverID kernel.UUID) (*ledger.DriverLedger, error) {
	args := m.Called(ctx, driverID)
	l, _ := args.Get(0).(*ledger.DriverLedger)
	return l, args.Error(1)
}
func (m *MockLedgerRepository) Save(ctx context.Context, l *ledger.DriverLedger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockWithdrawalRepository struct{ mock.Mock }

func (m *MockWithdrawalRepository) Add(ctx context.Context, w *withdrawal.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepository) Update(ctx context.Context, w *withdrawal.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*withdrawal.Withdrawal)
	return w, args.Error(1)
}
func (m *MockWithdrawalRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*withdrawal.Withdrawal)
	return w, args.Error(1)
}

type MockViolationRepository struct{ mock.Mock }

func (m *MockViolationRepository) Add(ctx context.Context, v *violation.Violation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockViolationRepository) Update(ctx context.Context, v *violation.Violation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockViolationRepository) Get(ctx context.Context, id kernel.UUID) (*violation.Violation, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*violation.Violation)
	return v, args.Error(1)
}
func (m *MockViolationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*violation.Violation, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*violation.Violation)
	return v, args.Error(1)
}

// MockUoW satisfies every unit-of-work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}
func (m *MockUoW) WithdrawalRepository() ports.WithdrawalRepository {
	args := m.Called()
	return args.Get(0).(ports.WithdrawalRepository)
}
func (m *MockUoW) ViolationRepository() ports.ViolationRepository {
	args := m.Called()
	return args.Get(0).(ports.ViolationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockWithdrawalUoWFactory struct{ mock.Mock }

func (m *MockWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	args := m.Called()
	return args.Get(0).(commands.WithdrawalUoW)
}

type MockViolationUoWFactory struct{ mock.Mock }

func (m *MockViolationUoWFactory) Create() commands.ViolationUoW {
	args := m.Called()
	return args.Get(0).(commands.ViolationUoW)
}

type MockDriverSuspensions struct{ mock.Mock }

func (m *MockDriverSuspensions) IsSuspended(ctx context.Context, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, driverID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDriverSuspensions) Suspend(
	ctx context.Context,
	driverID kernel.UUID,
	duration time.Duration,
	reason string,
) error {
	args := m.Called(ctx, driverID, duration, reason)
	return args.Error(0)
}
