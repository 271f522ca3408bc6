// Package pricing computes the price of a single delivery item.
//
// A price is derived from the item's weight (which selects a per-kilometre rate from a
// fixed tier table), its distance, and two optional services: loading assistance, which
// adds a fixed fee, and insurance, whose fee is supplied by the caller and only range-checked here.
//
// The result is a PriceBreakdown value object that is frozen onto the item when it is created.
// Calculator is stateless after construction and safe for concurrent use without synchronization.
package pricing
