// Package services provides domain services that coordinate several aggregates of the
// settlement core.
//
// The package includes:
//   - Settlement: applies delivery payouts, withdrawal settlements and violation penalties
//     to a driver's ledger together with the matching state transition
package services
