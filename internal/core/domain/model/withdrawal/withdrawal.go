package withdrawal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
)

var (
	// ErrWithdrawalIsNotConstructed is returned when a Withdrawal was not created through
	// NewWithdrawal or RestoreWithdrawal.
	ErrWithdrawalIsNotConstructed = errors.New("Withdrawal must be created via NewWithdrawal or RestoreWithdrawal")

	// ErrNotOwner is returned when a driver acts on another driver's request.
	ErrNotOwner = errors.New("withdrawal belongs to another driver")
)

// Request is the driver's input for a new withdrawal.
type Request struct {
	DriverID               kernel.UUID
	RequestedAmount        kernel.Money
	Account                BankAccount
	ConfirmedAccountNumber string
	DriverNote             string
}

// Withdrawal is a driver's cash-out request against the ledger balance.
//
// Invariants:
//   - RequestedAmount > 0
//   - ActualAmount + SystemFee == RequestedAmount, fixed at creation
//   - RejectionReason is set iff Status is Rejected
type Withdrawal struct {
	kernel.EventRecorder

	id              kernel.UUID
	driverID        kernel.UUID
	requestedAmount kernel.Money
	actualAmount    kernel.Money
	systemFee       kernel.Money
	account         BankAccount
	driverNote      string
	status          Status
	rejectionReason string
	adminNote       string
	processedBy     *kernel.UUID
	createdAt       time.Time
	processedAt     *time.Time
	completedAt     *time.Time
	cancelledAt     *time.Time
	version         int

	isConstructed bool
}

// NewWithdrawal validates a driver's request against the balance they have right now
// and freezes the payout split.
//
// Creation fails without any ledger effect when:
//   - the requested amount is not positive (ValueIsInvalidError)
//   - the account number and its confirmation differ (ValueIsInvalidError)
//   - the bank account is incomplete (ValueIsRequiredError)
//   - the requested amount exceeds currentBalance (InsufficientBalanceError)
func NewWithdrawal(
	id kernel.UUID,
	req Request,
	currentBalance kernel.Money,
	policy FeePolicy,
	at time.Time,
) (*Withdrawal, error) {
	if err := errors.Join(id.Validate(), req.DriverID.Validate(), policy.Validate()); err != nil {
		return nil, err
	}

	var amountErr, confirmErr error
	if !req.RequestedAmount.IsPositive() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("requestedAmount",
			fmt.Errorf("%d is not greater than 0", req.RequestedAmount))
	}
	if strings.TrimSpace(req.Account.AccountNumber) != strings.TrimSpace(req.ConfirmedAccountNumber) {
		confirmErr = errs.NewValueIsInvalidErrorWithCause("confirmedAccountNumber",
			errors.New("does not match bankAccountNumber"))
	}
	if err := errors.Join(amountErr, confirmErr, req.Account.Validate()); err != nil {
		return nil, err
	}

	if req.RequestedAmount > currentBalance {
		return nil, errs.NewInsufficientBalanceError(req.DriverID.String(), currentBalance.Int64(), req.RequestedAmount.Int64())
	}

	actual, fee := policy.Split(req.RequestedAmount)
	w := &Withdrawal{
		id:              id,
		driverID:        req.DriverID,
		requestedAmount: req.RequestedAmount,
		actualAmount:    actual,
		systemFee:       fee,
		account:         req.Account,
		driverNote:      req.DriverNote,
		status:          Pending,
		createdAt:       at,
		isConstructed:   true,
	}
	w.Record(NewStatusChanged(w))
	return w, nil
}

// Snapshot is the full persisted state of a withdrawal.
type Snapshot struct {
	ID              kernel.UUID
	DriverID        kernel.UUID
	RequestedAmount kernel.Money
	ActualAmount    kernel.Money
	SystemFee       kernel.Money
	Account         BankAccount
	DriverNote      string
	Status          Status
	RejectionReason string
	AdminNote       string
	ProcessedBy     *kernel.UUID
	CreatedAt       time.Time
	ProcessedAt     *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	Version         int
}

// RestoreWithdrawal rebuilds a withdrawal from persistence and re-checks the split invariant.
func RestoreWithdrawal(s Snapshot) (*Withdrawal, error) {
	if err := errors.Join(s.ID.Validate(), s.DriverID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if s.ActualAmount+s.SystemFee != s.RequestedAmount || !s.RequestedAmount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("withdrawal amounts",
			fmt.Errorf("%d + %d does not equal %d", s.ActualAmount, s.SystemFee, s.RequestedAmount))
	}
	if (s.Status == Rejected) != (s.RejectionReason != "") {
		return nil, errs.NewValueIsInvalidErrorWithCause("rejectionReason",
			fmt.Errorf("%s withdrawal has inconsistent rejection reason", s.Status))
	}

	return &Withdrawal{
		id:              s.ID,
		driverID:        s.DriverID,
		requestedAmount: s.RequestedAmount,
		actualAmount:    s.ActualAmount,
		systemFee:       s.SystemFee,
		account:         s.Account,
		driverNote:      s.DriverNote,
		status:          s.Status,
		rejectionReason: s.RejectionReason,
		adminNote:       s.AdminNote,
		processedBy:     s.ProcessedBy,
		createdAt:       s.CreatedAt,
		processedAt:     s.ProcessedAt,
		completedAt:     s.CompletedAt,
		cancelledAt:     s.CancelledAt,
		version:         s.Version,
		isConstructed:   true,
	}, nil
}

func (w *Withdrawal) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWithdrawalIsNotConstructed
	}
	return nil
}

func (w *Withdrawal) ID() kernel.UUID               { return w.id }
func (w *Withdrawal) DriverID() kernel.UUID         { return w.driverID }
func (w *Withdrawal) RequestedAmount() kernel.Money { return w.requestedAmount }
func (w *Withdrawal) ActualAmount() kernel.Money    { return w.actualAmount }
func (w *Withdrawal) SystemFee() kernel.Money       { return w.systemFee }
func (w *Withdrawal) Account() BankAccount          { return w.account }
func (w *Withdrawal) DriverNote() string            { return w.driverNote }
func (w *Withdrawal) Status() Status                { return w.status }
func (w *Withdrawal) RejectionReason() string       { return w.rejectionReason }
func (w *Withdrawal) AdminNote() string             { return w.adminNote }
func (w *Withdrawal) ProcessedBy() *kernel.UUID     { return w.processedBy }
func (w *Withdrawal) CreatedAt() time.Time          { return w.createdAt }
func (w *Withdrawal) ProcessedAt() *time.Time       { return w.processedAt }
func (w *Withdrawal) CompletedAt() *time.Time       { return w.completedAt }
func (w *Withdrawal) CancelledAt() *time.Time       { return w.cancelledAt }
func (w *Withdrawal) Version() int                  { return w.version }

// Snapshot exports the full state for persistence.
func (w *Withdrawal) Snapshot() Snapshot {
	return Snapshot{
		ID:              w.id,
		DriverID:        w.driverID,
		RequestedAmount: w.requestedAmount,
		ActualAmount:    w.actualAmount,
		SystemFee:       w.systemFee,
		Account:         w.account,
		DriverNote:      w.driverNote,
		Status:          w.status,
		RejectionReason: w.rejectionReason,
		AdminNote:       w.adminNote,
		ProcessedBy:     w.processedBy,
		CreatedAt:       w.createdAt,
		ProcessedAt:     w.processedAt,
		CompletedAt:     w.completedAt,
		CancelledAt:     w.cancelledAt,
		Version:         w.version,
	}
}

// IsOwnedBy reports whether driverID submitted the request.
func (w *Withdrawal) IsOwnedBy(driverID kernel.UUID) bool {
	return w.driverID.IsEqual(driverID)
}

// Approve accepts a Pending request. No money moves.
func (w *Withdrawal) Approve(adminID kernel.UUID, note string, at time.Time) error {
	next, err := w.status.TransitionTo(Approved)
	if err != nil {
		return err
	}

	w.status = next
	w.adminNote = note
	w.processedBy = &adminID
	w.processedAt = &at
	w.Record(NewStatusChanged(w))
	return nil
}

// Reject refuses a Pending request. A non-empty reason is required.
func (w *Withdrawal) Reject(adminID kernel.UUID, reason, note string, at time.Time) error {
	next, err := w.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}

	w.status = next
	w.rejectionReason = reason
	w.adminNote = note
	w.processedBy = &adminID
	w.processedAt = &at
	w.Record(NewStatusChanged(w))
	return nil
}

// ValidateComplete checks that the request can be completed without changing it.
func (w *Withdrawal) ValidateComplete() error {
	_, err := w.status.TransitionTo(Completed)
	return err
}

// Complete marks an Approved request as settled. The caller must debit the ledger in the
// same unit of work; services.Settlement does both.
func (w *Withdrawal) Complete(adminID kernel.UUID, note string, at time.Time) error {
	next, err := w.status.TransitionTo(Completed)
	if err != nil {
		return err
	}

	w.status = next
	if note != "" {
		w.adminNote = note
	}
	w.processedBy = &adminID
	w.completedAt = &at
	w.Record(NewStatusChanged(w))
	return nil
}

// Cancel lets the owning driver withdraw a Pending request.
func (w *Withdrawal) Cancel(driverID kernel.UUID, at time.Time) error {
	if !w.IsOwnedBy(driverID) {
		return ErrNotOwner
	}
	next, err := w.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	w.status = next
	w.cancelledAt = &at
	w.Record(NewStatusChanged(w))
	return nil
}
