// Package withdrawal implements a driver's cash-out request and its approval workflow.
//
// State transitions:
//
//	Pending ──> Approved ──> Completed
//	   │
//	   ├──> Rejected
//	   └──> Cancelled
//
// The payout split is computed once, at creation: actualAmount = floor(requested × payout share)
// and systemFee takes the remainder, so actualAmount + systemFee == requested exactly.
// Money only leaves the driver's ledger on Completed (see services.Settlement).
package withdrawal
