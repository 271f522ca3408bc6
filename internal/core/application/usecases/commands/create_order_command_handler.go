package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/pricing"
)

// CreateOrderCommandHandler prices every requested item and persists the new order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator *pricing.Calculator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, calculator *pricing.Calculator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle prices the items, builds the order and stores it in one transaction.
// Pricing failures (weight, distance, insurance fee range) are returned before any
// transaction is opened.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, requested := range cmd.Items() {
		item, err := newPricedItem(h.calculator, requested)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), items, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// newPricedItem freezes the calculator's price onto a new item. An insured item without
// an explicit fee is charged the minimum insurance fee.
func newPricedItem(calculator *pricing.Calculator, requested NewOrderItem) (*order.Item, error) {
	spec := withDefaultInsuranceFee(calculator, requested.Spec)

	price, err := calculator.Price(spec.PricingInput())
	if err != nil {
		return nil, err
	}

	return order.NewItem(requested.ID, spec, price)
}

func withDefaultInsuranceFee(calculator *pricing.Calculator, spec order.ItemSpec) order.ItemSpec {
	if spec.Insurance && spec.InsuranceFee == 0 {
		spec.InsuranceFee = calculator.Config().InsuranceFeeMin
	}
	return spec
}
