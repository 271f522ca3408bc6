package services

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/order"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"
)

// ErrLedgerDriverMismatch is returned when the ledger passed in does not belong to the
// driver the operation concerns.
var ErrLedgerDriverMismatch = errors.New("ledger belongs to another driver")

// Settlement is a domain service that applies the money side of the item, withdrawal and
// violation workflows to a driver's ledger.
//
// Each method mutates two aggregates. It validates everything that can fail before
// touching either of them, so on error both are left unchanged and the caller can simply
// roll back its unit of work.
//
// Business rules:
//   - Delivering an item credits the payout (total minus commission)
//   - Completing a withdrawal debits the full requested amount
//   - Resolving a violation with a penalty debits the penalty
//   - No debit may drive the balance below zero
//
// Example usage:
//
//	settlement := services.NewSettlement(kernel.MustRate("0.2"))
//	if err := settlement.CompleteWithdrawal(w, l, adminID, note, time.Now()); err != nil {
//	    // errs.ErrInvalidTransition or errs.ErrInsufficientBalance
//	}
type Settlement struct {
	commission kernel.Rate
}

// NewSettlement creates a Settlement that keeps commission of every delivered item's total.
func NewSettlement(commission kernel.Rate) Settlement {
	return Settlement{commission: commission}
}

// Commission returns the configured commission rate.
func (s Settlement) Commission() kernel.Rate {
	return s.commission
}

// DeliverItem moves the item to Delivered and credits its payout to the driver's ledger.
// A zero payout delivers the item without a ledger entry.
func (s Settlement) DeliverItem(
	o *order.Order,
	l *ledger.DriverLedger,
	itemID, driverID kernel.UUID,
	at time.Time,
) (kernel.Money, error) {
	if err := errors.Join(o.Validate(), l.Validate()); err != nil {
		return 0, err
	}
	if !l.DriverID().IsEqual(driverID) {
		return 0, ErrLedgerDriverMismatch
	}

	payout, err := o.DeliverItem(itemID, driverID, s.commission, at)
	if err != nil {
		return 0, err
	}

	if payout.IsPositive() {
		if _, err = l.Credit(ledger.ItemPayout, payout, itemID, at); err != nil {
			return 0, err
		}
	}
	return payout, nil
}

// CompleteWithdrawal debits the requested amount and marks the request Completed.
//
// The request must be Approved; otherwise an InvalidTransitionError is returned and no
// debit happens. When the balance has dropped below the requested amount since approval,
// an InsufficientBalanceError is returned and the request stays Approved.
func (s Settlement) CompleteWithdrawal(
	w *withdrawal.Withdrawal,
	l *ledger.DriverLedger,
	adminID kernel.UUID,
	note string,
	at time.Time,
) error {
	if err := errors.Join(w.Validate(), l.Validate()); err != nil {
		return err
	}
	if !l.DriverID().IsEqual(w.DriverID()) {
		return ErrLedgerDriverMismatch
	}
	if err := w.ValidateComplete(); err != nil {
		return err
	}

	if _, err := l.Debit(ledger.WithdrawalSettlement, w.RequestedAmount(), w.ID(), at); err != nil {
		return err
	}
	return w.Complete(adminID, note, at)
}

// ResolveViolation debits the penalty (if any) and marks the report Resolved.
func (s Settlement) ResolveViolation(
	v *violation.Violation,
	l *ledger.DriverLedger,
	adminID kernel.UUID,
	r violation.Resolution,
	notes string,
	at time.Time,
) error {
	if err := errors.Join(v.Validate(), l.Validate()); err != nil {
		return err
	}
	if !l.DriverID().IsEqual(v.DriverID()) {
		return ErrLedgerDriverMismatch
	}
	if err := v.ValidateResolve(r); err != nil {
		return err
	}

	if r.Penalty.IsPositive() {
		if _, err := l.Debit(ledger.ViolationPenalty, r.Penalty, v.ID(), at); err != nil {
			return err
		}
	}
	return v.Resolve(adminID, r, notes, at)
}
