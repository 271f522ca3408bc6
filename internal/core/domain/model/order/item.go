package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

	// ErrDriverIsNotAssigned is returned when a driver other than the assigned one tries to
	// advance an item.
	ErrDriverIsNotAssigned = errors.New("driver is not assigned to the item")

	// ErrDriverIsSuspended is returned when a suspended driver tries to accept an item.
	ErrDriverIsSuspended = errors.New("driver is suspended")

	// ErrItemPriceIsFrozen is returned when the insurance flag of an item that has left
	// Created (or already has a driver) is changed.
	ErrItemPriceIsFrozen = errors.New("item price is frozen")
)

// DefaultCancelReasonMinLength is the minimum number of characters of a cancellation reason.
const DefaultCancelReasonMinLength = 10

// ItemSpec describes an item before it is priced.
type ItemSpec struct {
	VehicleType    VehicleType
	WeightKg       float64
	DistanceKm     float64
	LoadingService bool
	Insurance      bool
	InsuranceFee   kernel.Money
}

// PricingInput converts the spec into calculator input.
func (s ItemSpec) PricingInput() pricing.Input {
	return pricing.Input{
		WeightKg:          s.WeightKg,
		DistanceKm:        s.DistanceKm,
		LoadingAssist:     s.LoadingService,
		InsuranceSelected: s.Insurance,
		InsuranceFee:      s.InsuranceFee,
	}
}

// Item is one vehicle/cargo unit of an order. It is priced once at creation and then
// advanced through its own lifecycle by the driver who accepted it.
//
// Item is an entity of the Order aggregate: it is only mutated through Order methods.
type Item struct {
	id           kernel.UUID
	spec         ItemSpec
	price        pricing.PriceBreakdown
	status       Status
	driverID     *kernel.UUID
	acceptedAt   *time.Time
	pickedUpAt   *time.Time
	deliveringAt *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
	cancelReason string

	isConstructed bool
}

// NewItem creates an item in Created status with the given frozen price.
func NewItem(id kernel.UUID, spec ItemSpec, price pricing.PriceBreakdown) (*Item, error) {
	item := &Item{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSpec(spec),
		item.setPrice(price),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// ItemSnapshot is the full persisted state of an item.
type ItemSnapshot struct {
	ID           kernel.UUID
	Spec         ItemSpec
	Price        pricing.PriceBreakdown
	Status       Status
	DriverID     *kernel.UUID
	AcceptedAt   *time.Time
	PickedUpAt   *time.Time
	DeliveringAt *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// RestoreItem rebuilds an item from persistence and checks that its status, driver and
// cancellation fields are consistent.
func RestoreItem(s ItemSnapshot) (*Item, error) {
	item := &Item{
		isConstructed: true,
		driverID:      s.DriverID,
		acceptedAt:    s.AcceptedAt,
		pickedUpAt:    s.PickedUpAt,
		deliveringAt:  s.DeliveringAt,
		deliveredAt:   s.DeliveredAt,
		cancelledAt:   s.CancelledAt,
		cancelReason:  s.CancelReason,
	}

	if err := errors.Join(
		item.setID(s.ID),
		item.setSpec(s.Spec),
		item.setPrice(s.Price),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	item.status = s.Status

	if s.Status.HasDriver() != (s.DriverID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("%s item has inconsistent driver assignment", s.Status))
	}
	if (s.Status == Cancelled) != (s.CancelReason != "") {
		return nil, errs.NewValueIsInvalidErrorWithCause("cancelReason",
			fmt.Errorf("%s item has inconsistent cancel reason", s.Status))
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID               { return i.id }
func (i *Item) Spec() ItemSpec                { return i.spec }
func (i *Item) VehicleType() VehicleType      { return i.spec.VehicleType }
func (i *Item) WeightKg() float64             { return i.spec.WeightKg }
func (i *Item) DistanceKm() float64           { return i.spec.DistanceKm }
func (i *Item) LoadingService() bool          { return i.spec.LoadingService }
func (i *Item) Insurance() bool               { return i.spec.Insurance }
func (i *Item) Price() pricing.PriceBreakdown { return i.price }
func (i *Item) Status() Status                { return i.status }
func (i *Item) DriverID() *kernel.UUID        { return i.driverID }
func (i *Item) AcceptedAt() *time.Time        { return i.acceptedAt }
func (i *Item) PickedUpAt() *time.Time        { return i.pickedUpAt }
func (i *Item) DeliveringAt() *time.Time      { return i.deliveringAt }
func (i *Item) DeliveredAt() *time.Time       { return i.deliveredAt }
func (i *Item) CancelledAt() *time.Time       { return i.cancelledAt }
func (i *Item) CancelReason() string          { return i.cancelReason }

// IsAssignedTo reports whether driverID is the driver of the item.
func (i *Item) IsAssignedTo(driverID kernel.UUID) bool {
	return i.driverID != nil && i.driverID.IsEqual(driverID)
}

func (i *Item) accept(driverID kernel.UUID, suspended bool, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if i.driverID != nil {
		return errs.NewInvalidTransitionErrorWithCause("order item", i.status, Accepted,
			errors.New("driver is already assigned"))
	}

	next, err := i.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}
	if suspended {
		return ErrDriverIsSuspended
	}

	i.status = next
	i.driverID = &driverID
	i.acceptedAt = &at
	return nil
}

func (i *Item) advance(driverID kernel.UUID, target Status, at time.Time) error {
	next, err := i.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if !i.IsAssignedTo(driverID) {
		return ErrDriverIsNotAssigned
	}

	i.status = next
	switch next { //nolint:exhaustive // only driver-advanced stages reach here
	case PickedUp:
		i.pickedUpAt = &at
	case Delivering:
		i.deliveringAt = &at
	case Delivered:
		i.deliveredAt = &at
	}
	return nil
}

func (i *Item) cancel(reason string, minReasonLength int, at time.Time) error {
	if i.driverID != nil {
		return errs.NewInvalidTransitionErrorWithCause("order item", i.status, Cancelled,
			errors.New("driver is already assigned"))
	}

	next, err := i.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("cancelReason")
	}
	if n := utf8.RuneCountInString(reason); n < minReasonLength {
		return errs.NewValueIsInvalidErrorWithCause("cancelReason",
			fmt.Errorf("%d characters is shorter than %d", n, minReasonLength))
	}

	i.status = next
	i.cancelReason = reason
	i.cancelledAt = &at
	return nil
}

// IsPriceFrozen reports whether the price can no longer change: the item has left
// Created or a driver is assigned.
func (i *Item) IsPriceFrozen() bool {
	return i.status != Created || i.driverID != nil
}

func (i *Item) changeInsurance(insured bool, fee kernel.Money, price pricing.PriceBreakdown) error {
	if i.IsPriceFrozen() {
		return fmt.Errorf("%w: item is %s", ErrItemPriceIsFrozen, i.status)
	}
	if err := price.Validate(); err != nil {
		return err
	}

	i.spec.Insurance = insured
	i.spec.InsuranceFee = fee
	if !insured {
		i.spec.InsuranceFee = 0
	}
	i.price = price
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSpec(spec ItemSpec) error {
	var weightErr, distanceErr error
	if spec.WeightKg <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not greater than 0", spec.WeightKg))
	}
	if spec.DistanceKm < 0 {
		distanceErr = errs.NewValueIsInvalidErrorWithCause("distanceKm", fmt.Errorf("%v is negative", spec.DistanceKm))
	}

	if err := errors.Join(spec.VehicleType.Validate(), weightErr, distanceErr); err != nil {
		return err
	}
	i.spec = spec
	return nil
}

func (i *Item) setPrice(price pricing.PriceBreakdown) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}
