package ledger

import (
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
)

// EntryKind names the business operation behind a ledger entry.
type EntryKind int

const (
	UnknownKind EntryKind = iota
	// ItemPayout credits the payout of a delivered item.
	ItemPayout
	// WithdrawalSettlement debits the requested amount of a completed withdrawal.
	WithdrawalSettlement
	// ViolationPenalty debits a penalty set when a violation is resolved.
	ViolationPenalty
)

func getEntryKindStrings() map[EntryKind]string {
	return map[EntryKind]string{
		UnknownKind:          "Unknown",
		ItemPayout:           "ItemPayout",
		WithdrawalSettlement: "WithdrawalSettlement",
		ViolationPenalty:     "ViolationPenalty",
	}
}

func EntryKindFromString(s string) (EntryKind, error) {
	for k, str := range getEntryKindStrings() {
		if k != UnknownKind && str == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid entry kind", s))
}

func (k EntryKind) String() string {
	if str, ok := getEntryKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// IsCredit reports whether entries of this kind increase the balance.
func (k EntryKind) IsCredit() bool {
	return k == ItemPayout
}

// Entry is an immutable journal line. Amount is always positive; the direction follows
// from Kind. BalanceAfter is the ledger balance right after the entry was applied.
type Entry struct {
	ID           kernel.UUID
	DriverID     kernel.UUID
	Kind         EntryKind
	Amount       kernel.Money
	BalanceAfter kernel.Money
	ReferenceID  kernel.UUID
	CreatedAt    time.Time
}

// SignedAmount returns Amount for credits and -Amount for debits.
func (e Entry) SignedAmount() kernel.Money {
	if e.Kind.IsCredit() {
		return e.Amount
	}
	return -e.Amount
}
