package commands_test

import (
	"testing"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func truckItem() commands.NewOrderItem {
	return commands.NewOrderItem{
		ID: kernel.NewUUID(),
		Spec: order.ItemSpec{
			VehicleType:    order.Truck,
			WeightKg:       2000,
			DistanceKm:     10,
			LoadingService: true,
			Insurance:      true,
			InsuranceFee:   100000,
		},
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID, customerID := kernel.NewUUID(), kernel.NewUUID()
	item := truckItem()

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, []commands.NewOrderItem{item})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, []commands.NewOrderItem{item}, cmd.Items())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), []commands.NewOrderItem{truckItem()})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_ItemWithoutID(t *testing.T) {
	item := truckItem()
	item.ID = kernel.UUID{}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.NewOrderItem{item})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	err := commands.CreateOrderCommand{}.Validate()
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
