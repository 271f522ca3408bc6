package http

import (
	"context"
	"net/http"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type ItemSpecRequest struct {
	VehicleType    string  `json:"vehicleType"    validate:"required,oneof=Motorbike Pickup Van Truck"`
	WeightKg       float64 `json:"weightKg"       validate:"gt=0,lte=100000"`
	DistanceKm     float64 `json:"distanceKm"     validate:"gte=0,lte=20000"`
	LoadingService bool    `json:"loadingService"`
	Insurance      bool    `json:"insurance"`
	InsuranceFee   int64   `json:"insuranceFee"   validate:"gte=0"`
}

func (r ItemSpecRequest) toSpec() (order.ItemSpec, error) {
	vehicleType, err := order.VehicleTypeFromString(r.VehicleType)
	if err != nil {
		return order.ItemSpec{}, err
	}
	return order.ItemSpec{
		VehicleType:    vehicleType,
		WeightKg:       r.WeightKg,
		DistanceKm:     r.DistanceKm,
		LoadingService: r.LoadingService,
		Insurance:      r.Insurance,
		InsuranceFee:   kernel.Money(r.InsuranceFee),
	}, nil
}

type CreateOrderRequest struct {
	Items []ItemSpecRequest `json:"items" validate:"required,min=1,dive"`
}

type ChangeInsuranceRequest struct {
	Insurance    *bool `json:"insurance"    validate:"required"`
	InsuranceFee int64 `json:"insuranceFee" validate:"gte=0"`
}

type CancelItemRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type DeliveryResponse struct {
	Payout kernel.Money      `json:"payout"`
	Order  queries.OrderView `json:"order"`
}

// QuotePrice handles POST /api/pricing/quote - prices an item without storing anything.
func (s *Server) QuotePrice(c echo.Context) error {
	var req ItemSpecRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	spec, err := req.toSpec()
	if err != nil {
		return err
	}
	if spec.Insurance && spec.InsuranceFee == 0 {
		spec.InsuranceFee = s.calculator.Config().InsuranceFeeMin
	}

	breakdown, err := s.calculator.Price(spec.PricingInput())
	if err != nil {
		return err
	}
	return ok(c, priceView(breakdown))
}

// CreateOrder handles POST /api/orders - places an order for the calling customer.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]commands.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		spec, err := item.toSpec()
		if err != nil {
			return err
		}
		items = append(items, commands.NewOrderItem{ID: kernel.NewUUID(), Spec: spec})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, principalFrom(c).ID, items)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.orderView(c.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return created(c, view, "Order created")
}

// GetOrder handles GET /api/orders/:orderId. Customers see their own orders, drivers the
// orders they carry items of, admins every order.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	view, err := s.orderView(c.Request().Context(), orderID)
	if err != nil {
		return err
	}

	p := principalFrom(c)
	if !p.IsAdmin() && !view.CustomerID.IsEqual(p.ID) && !view.HasDriver(p.ID) {
		return commands.ErrForbidden
	}
	return ok(c, view)
}

// AddOrderItem handles POST /api/orders/:orderId/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req ItemSpecRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	spec, err := req.toSpec()
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddOrderItemCommand(principalFrom(c).Actor(), orderID,
		commands.NewOrderItem{ID: kernel.NewUUID(), Spec: spec})
	if err != nil {
		return err
	}
	if err = s.handlers.AddOrderItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusCreated, orderID, "Item added")
}

// RemoveOrderItem handles DELETE /api/orders/:orderId/items/:itemId.
func (s *Server) RemoveOrderItem(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveOrderItemCommand(principalFrom(c).Actor(), orderID, itemID)
	if err != nil {
		return err
	}
	if err = s.handlers.RemoveOrderItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, "Item removed")
}

// ChangeItemInsurance handles PUT /api/orders/:orderId/items/:itemId/insurance.
func (s *Server) ChangeItemInsurance(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return err
	}
	var req ChangeInsuranceRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeItemInsuranceCommand(principalFrom(c).Actor(), orderID, itemID,
		*req.Insurance, kernel.Money(req.InsuranceFee))
	if err != nil {
		return err
	}
	if err = s.handlers.ChangeItemInsurance.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, "Insurance updated")
}

// CancelItem handles PUT /api/orders/:orderId/items/:itemId/cancel.
func (s *Server) CancelItem(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return err
	}
	var req CancelItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelItemCommand(principalFrom(c).Actor(), orderID, itemID, req.Reason)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, "Item cancelled")
}

// AcceptItem handles PUT /api/driver/orders/:orderId/items/:itemId/accept.
func (s *Server) AcceptItem(c echo.Context) error {
	target, err := driverTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptItemCommand(target)
	if err != nil {
		return err
	}
	if err = s.handlers.AcceptItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, target.OrderID, "Item accepted")
}

// PickUpItem handles PUT /api/driver/orders/:orderId/items/:itemId/pickup.
func (s *Server) PickUpItem(c echo.Context) error {
	return s.advanceItem(c, order.PickedUp, "Item picked up")
}

// StartDelivering handles PUT /api/driver/orders/:orderId/items/:itemId/delivering.
func (s *Server) StartDelivering(c echo.Context) error {
	return s.advanceItem(c, order.Delivering, "Item is on its way")
}

func (s *Server) advanceItem(c echo.Context, status order.Status, message string) error {
	target, err := driverTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAdvanceItemCommand(target, status)
	if err != nil {
		return err
	}
	if err = s.handlers.AdvanceItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, target.OrderID, message)
}

// DeliverItem handles PUT /api/driver/orders/:orderId/items/:itemId/deliver - completes
// the item and credits the driver's payout.
func (s *Server) DeliverItem(c echo.Context) error {
	target, err := driverTarget(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeliverItemCommand(target)
	if err != nil {
		return err
	}
	payout, err := s.handlers.DeliverItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	view, err := s.orderView(c.Request().Context(), target.OrderID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, DeliveryResponse{Payout: payout, Order: view}, "Item delivered")
}

func (s *Server) orderView(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.OrderView{}, err
	}
	return s.handlers.GetOrder.Handle(ctx, query)
}

func (s *Server) respondOrder(c echo.Context, status int, orderID kernel.UUID, message string) error {
	view, err := s.orderView(c.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return respond(c, status, view, message)
}

func itemPath(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, itemID, nil
}

func driverTarget(c echo.Context) (commands.ItemTarget, error) {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return commands.ItemTarget{}, err
	}
	return commands.ItemTarget{
		DriverID: principalFrom(c).ID,
		OrderID:  orderID,
		ItemID:   itemID,
	}, nil
}
