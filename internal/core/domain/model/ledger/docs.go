// Package ledger holds the DriverLedger aggregate: one settled balance per driver, plus the
// journal of entries that explain every change to it.
//
// The balance never goes negative. Credits come from delivered items; debits come from
// completed withdrawals and violation penalties and are refused with an
// InsufficientBalanceError when the balance is too small.
package ledger
