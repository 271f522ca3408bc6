package commands_test

import (
	"errors"
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/services"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveringOrder(t *testing.T, driverID kernel.UUID) (*order.Order, *order.Item) {
	t.Helper()
	o, item := storedOrder(t, kernel.NewUUID())
	now := time.Now()
	require.NoError(t, o.AcceptItem(item.ID(), driverID, false, now))
	require.NoError(t, o.PickUpItem(item.ID(), driverID, now))
	require.NoError(t, o.StartDeliveringItem(item.ID(), driverID, now))
	o.ClearDomainEvents()
	return o, item
}

func TestDeliverItemCommandHandler_Handle_CreditsPayout(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o, item := deliveringOrder(t, driverID)
	l, err := ledger.RestoreDriverLedger(driverID, 100000, time.Now(), 4)
	require.NoError(t, err)
	cmd, _ := commands.NewDeliverItemCommand(commands.ItemTarget{DriverID: driverID, OrderID: o.ID(), ItemID: item.ID()})

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("GetForUpdate", ctx, driverID).Return(l, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		ledgerRepo.On("Save", ctx, l).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverItemCommandHandler(factory, services.NewSettlement(kernel.MustRate("0.2")))
	payout, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	// 750000 - floor(750000 * 0.2)
	assert.Equal(t, kernel.Money(600000), payout)
	assert.Equal(t, kernel.Money(700000), l.Balance())
	require.Len(t, l.NewEntries(), 1)
	assert.Equal(t, ledger.ItemPayout, l.NewEntries()[0].Kind)
	assert.Equal(t, order.Delivered, item.Status())
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverItemCommandHandler_Handle_SkippedStage(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o, item := storedOrder(t, kernel.NewUUID())
	require.NoError(t, o.AcceptItem(item.ID(), driverID, false, time.Now()))
	l, _ := ledger.RestoreDriverLedger(driverID, 0, time.Now(), 1)
	cmd, _ := commands.NewDeliverItemCommand(commands.ItemTarget{DriverID: driverID, OrderID: o.ID(), ItemID: item.ID()})

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("GetForUpdate", ctx, driverID).Return(l, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverItemCommandHandler(factory, services.NewSettlement(kernel.MustRate("0.2")))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Accepted, item.Status())
	assert.Equal(t, kernel.Money(0), l.Balance())
	ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeliverItemCommandHandler_Handle_LedgerSaveError(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o, item := deliveringOrder(t, driverID)
	l, _ := ledger.RestoreDriverLedger(driverID, 0, time.Now(), 1)
	cmd, _ := commands.NewDeliverItemCommand(commands.ItemTarget{DriverID: driverID, OrderID: o.ID(), ItemID: item.ID()})

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("GetForUpdate", ctx, driverID).Return(l, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	ledgerRepo.On("Save", ctx, l).Return(errors.New("save error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverItemCommandHandler(factory, services.NewSettlement(kernel.MustRate("0.2")))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
