// Package order implements the Order aggregate and the lifecycle of its delivery items.
//
// The package includes:
//   - Order: the aggregate root owning 1..N items and their total price
//   - Item: one priced vehicle/cargo unit with its own lifecycle
//   - Status: the item state machine, driven by an explicit transition table
//   - VehicleType: the kind of vehicle an item requires
//
// Key business rules:
//   - An item's price is frozen when it is created; insurance may only be toggled while the
//     item is Created and has no driver
//   - Items move Created -> Accepted -> PickedUp -> Delivering -> Delivered with no skipping,
//     and only the assigned driver may advance them
//   - Cancellation is possible only from Created, without a driver, and with a reason
//   - Delivering an item yields the driver's payout (total minus commission)
//   - Items can be added or removed only before any of them is accepted
package order
