package ledger

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
)

// ErrLedgerIsNotConstructed is returned when a DriverLedger was not created through NewDriverLedger
// or RestoreDriverLedger.
var ErrLedgerIsNotConstructed = errors.New("DriverLedger must be created via NewDriverLedger or RestoreDriverLedger")

// DriverLedger is the settled balance of one driver.
//
// Invariants:
//   - balance >= 0 at all times
//   - every Credit and Debit appends exactly one Entry whose BalanceAfter is the new balance
//
// Mutations on the same driver must be serialized by the caller's unit of work (the
// repository locks the row and checks the version on update).
type DriverLedger struct {
	kernel.EventRecorder

	driverID   kernel.UUID
	balance    kernel.Money
	newEntries []Entry
	updatedAt  time.Time
	version    int

	isConstructed bool
}

// NewDriverLedger opens an empty ledger for driverID.
func NewDriverLedger(driverID kernel.UUID, at time.Time) (*DriverLedger, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	return &DriverLedger{
		driverID:      driverID,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreDriverLedger rebuilds a ledger from persistence.
func RestoreDriverLedger(driverID kernel.UUID, balance kernel.Money, updatedAt time.Time, version int) (*DriverLedger, error) {
	if err := errors.Join(driverID.Validate(), balance.Validate()); err != nil {
		return nil, err
	}
	return &DriverLedger{
		driverID:      driverID,
		balance:       balance,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

func (l *DriverLedger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

func (l *DriverLedger) DriverID() kernel.UUID { return l.driverID }
func (l *DriverLedger) Balance() kernel.Money { return l.balance }
func (l *DriverLedger) UpdatedAt() time.Time  { return l.updatedAt }
func (l *DriverLedger) Version() int          { return l.version }

// NewEntries returns the entries appended since the ledger was loaded.
func (l *DriverLedger) NewEntries() []Entry {
	return l.newEntries
}

// CanDebit reports whether amount can be debited without making the balance negative.
func (l *DriverLedger) CanDebit(amount kernel.Money) bool {
	return amount <= l.balance
}

// Credit increases the balance. Only ItemPayout entries are credits.
func (l *DriverLedger) Credit(kind EntryKind, amount kernel.Money, referenceID kernel.UUID, at time.Time) (Entry, error) {
	if !kind.IsCredit() {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%s is not a credit", kind))
	}
	if err := validateMovement(amount, referenceID); err != nil {
		return Entry{}, err
	}

	l.balance = l.balance.Add(amount)
	return l.append(kind, amount, referenceID, at), nil
}

// Debit decreases the balance or fails with InsufficientBalanceError, leaving the ledger
// unchanged.
//
// Example:
//
//	if _, err := l.Debit(ledger.WithdrawalSettlement, w.RequestedAmount(), w.ID(), now); err != nil {
//	    return err // errors.Is(err, errs.ErrInsufficientBalance)
//	}
func (l *DriverLedger) Debit(kind EntryKind, amount kernel.Money, referenceID kernel.UUID, at time.Time) (Entry, error) {
	if kind.IsCredit() || kind == UnknownKind {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%s is not a debit", kind))
	}
	if err := validateMovement(amount, referenceID); err != nil {
		return Entry{}, err
	}
	if !l.CanDebit(amount) {
		return Entry{}, errs.NewInsufficientBalanceError(l.driverID.String(), l.balance.Int64(), amount.Int64())
	}

	l.balance = l.balance.Sub(amount)
	return l.append(kind, amount, referenceID, at), nil
}

func (l *DriverLedger) append(kind EntryKind, amount kernel.Money, referenceID kernel.UUID, at time.Time) Entry {
	entry := Entry{
		ID:           kernel.NewUUID(),
		DriverID:     l.driverID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: l.balance,
		ReferenceID:  referenceID,
		CreatedAt:    at,
	}
	l.newEntries = append(l.newEntries, entry)
	l.updatedAt = at
	l.Record(NewBalanceChanged(entry))
	return entry
}

func validateMovement(amount kernel.Money, referenceID kernel.UUID) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	if err := referenceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("referenceId", err)
	}
	return nil
}
