package order

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemSetIsFrozen is returned when items are added or removed after a driver has
	// accepted any item of the order.
	ErrItemSetIsFrozen = errors.New("order items can no longer be changed")
)

// Order is the aggregate root that owns one or more delivery items.
//
// Order follows these invariants:
//   - Holds at least one item
//   - TotalPrice equals the sum of the item totals; it is recomputed when the item set
//     or an item's insurance changes, never by status changes alone
//   - Items can be added or removed only while every item is Created or Cancelled
//   - Each item follows its own lifecycle (see Status)
//
// Every mutation records a domain event that is published after the unit of work commits.
type Order struct {
	kernel.EventRecorder

	id         kernel.UUID
	customerID kernel.UUID
	items      []*Item
	totalPrice kernel.Money
	createdAt  time.Time
	version    int

	isConstructed bool
}

// NewOrder creates an order for customerID holding the given priced items.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), spec, breakdown)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []*order.Item{item}, time.Now())
func NewOrder(id, customerID kernel.UUID, items []*Item, createdAt time.Time) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	o.Record(NewOrderCreated(o))
	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The total price is taken as stored and
// checked against the items.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []*Item,
	totalPrice kernel.Money,
	createdAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if sum := o.itemsTotal(); sum != totalPrice {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("stored total %d does not match item total %d", totalPrice, sum))
	}
	o.totalPrice = totalPrice
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) CustomerID() kernel.UUID  { return o.customerID }
func (o *Order) TotalPrice() kernel.Money { return o.totalPrice }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }

// IsOwnedBy reports whether customerID placed the order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// Version is the optimistic concurrency version the order was loaded with.
func (o *Order) Version() int { return o.version }

// Items returns a copy of the item list.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item returns the item with the given id or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// CanChangeItems reports whether items may still be added or removed.
func (o *Order) CanChangeItems() bool {
	for _, item := range o.items {
		if item.status != Created && item.status != Cancelled {
			return false
		}
	}
	return true
}

// AddItem appends a priced item and recomputes the total.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !o.CanChangeItems() {
		return ErrItemSetIsFrozen
	}
	if _, err := o.Item(item.id); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("itemId", fmt.Errorf("item %s is already in the order", item.id))
	}

	o.items = append(o.items, item)
	o.recalculateTotal()
	o.Record(NewItemSetChanged(o, item.id, "added"))
	return nil
}

// RemoveItem drops an item and recomputes the total. The last item cannot be removed.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if !o.CanChangeItems() {
		return ErrItemSetIsFrozen
	}

	idx := -1
	for i, item := range o.items {
		if item.id.IsEqual(itemID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errs.NewObjectNotFoundError("itemId", itemID.String())
	}
	if len(o.items) == 1 {
		return errs.NewValueIsInvalidErrorWithCause("items", errors.New("an order must keep at least one item"))
	}

	o.items = append(o.items[:idx], o.items[idx+1:]...)
	o.recalculateTotal()
	o.Record(NewItemSetChanged(o, itemID, "removed"))
	return nil
}

// AcceptItem assigns driverID to a Created item. suspended carries the outcome of the
// driver eligibility check; a suspended driver is refused with ErrDriverIsSuspended.
func (o *Order) AcceptItem(itemID, driverID kernel.UUID, suspended bool, at time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.accept(driverID, suspended, at); err != nil {
		return err
	}

	o.Record(NewItemStatusChanged(o, item))
	return nil
}

// PickUpItem moves an Accepted item to PickedUp. Only the assigned driver may do so.
func (o *Order) PickUpItem(itemID, driverID kernel.UUID, at time.Time) error {
	return o.advanceItem(itemID, driverID, PickedUp, at)
}

// StartDeliveringItem moves a PickedUp item to Delivering. Only the assigned driver may do so.
func (o *Order) StartDeliveringItem(itemID, driverID kernel.UUID, at time.Time) error {
	return o.advanceItem(itemID, driverID, Delivering, at)
}

// DeliverItem moves a Delivering item to Delivered and returns the driver's payout:
// the item total minus floor(total × commission).
//
// The caller credits the payout to the driver's ledger in the same unit of work.
func (o *Order) DeliverItem(itemID, driverID kernel.UUID, commission kernel.Rate, at time.Time) (kernel.Money, error) {
	if err := o.advanceItem(itemID, driverID, Delivered, at); err != nil {
		return 0, err
	}

	item, _ := o.Item(itemID)
	total := item.price.Total()
	payout := total.Sub(total.FloorMul(commission))

	o.Record(NewItemDelivered(o, item, payout))
	return payout, nil
}

// CancelItem cancels a Created item that has no driver. The reason must be at least
// minReasonLength characters long.
func (o *Order) CancelItem(itemID kernel.UUID, reason string, minReasonLength int, at time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.cancel(reason, minReasonLength, at); err != nil {
		return err
	}

	o.Record(NewItemStatusChanged(o, item))
	return nil
}

// ChangeItemInsurance toggles insurance of an unassigned Created item and freezes the
// re-computed price onto it. Once a driver has accepted the item the price is frozen and
// ErrItemPriceIsFrozen is returned.
func (o *Order) ChangeItemInsurance(itemID kernel.UUID, insured bool, fee kernel.Money, price pricing.PriceBreakdown) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.changeInsurance(insured, fee, price); err != nil {
		return err
	}

	o.recalculateTotal()
	o.Record(NewItemSetChanged(o, itemID, "insurance_changed"))
	return nil
}

func (o *Order) advanceItem(itemID, driverID kernel.UUID, target Status, at time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.advance(driverID, target, at); err != nil {
		return err
	}

	if target != Delivered {
		o.Record(NewItemStatusChanged(o, item))
	}
	return nil
}

func (o *Order) itemsTotal() kernel.Money {
	prices := make([]pricing.PriceBreakdown, 0, len(o.items))
	for _, item := range o.items {
		prices = append(prices, item.price)
	}
	return pricing.SumTotals(prices...)
}

func (o *Order) recalculateTotal() {
	o.totalPrice = o.itemsTotal()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s appears twice", item.id))
		}
		seen[item.id] = struct{}{}
	}

	o.items = items
	return nil
}
