package withdrawal_test

import (
	"testing"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func validRequest(amount kernel.Money) withdrawal.Request {
	return withdrawal.Request{
		DriverID:        kernel.NewUUID(),
		RequestedAmount: amount,
		Account: withdrawal.BankAccount{
			AccountName:   "NGUYEN VAN A",
			AccountNumber: "0123456789",
			BankName:      "Vietcombank",
			BankCode:      "VCB",
		},
		ConfirmedAccountNumber: "0123456789",
	}
}

func newPending(t *testing.T, amount kernel.Money) *withdrawal.Withdrawal {
	t.Helper()
	w, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(amount), amount, withdrawal.DefaultFeePolicy(), now)
	require.NoError(t, err)
	return w
}

func TestNewWithdrawal(t *testing.T) {
	t.Run("splits one million into 800000 and 200000", func(t *testing.T) {
		w, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(1000000), 1500000,
			withdrawal.DefaultFeePolicy(), now)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, withdrawal.Pending, w.Status())
		assert.Equal(t, kernel.Money(800000), w.ActualAmount())
		assert.Equal(t, kernel.Money(200000), w.SystemFee())
		assert.Len(t, w.DomainEvents(), 1)
	})

	t.Run("split never leaks currency", func(t *testing.T) {
		for _, amount := range []kernel.Money{1, 2, 3, 4, 7, 99, 101, 123457, 999999, 1000001} {
			w, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(amount), amount,
				withdrawal.DefaultFeePolicy(), now)
			require.NoError(t, err)

			assert.Equal(t, amount, w.ActualAmount()+w.SystemFee())
			assert.Equal(t, amount.FloorMul(kernel.MustRate("0.8")), w.ActualAmount())
		}
	})

	t.Run("fee rate is injected", func(t *testing.T) {
		policy := withdrawal.NewFeePolicy(kernel.MustRate("0.1"))

		w, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(1000), 1000, policy, now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(900), w.ActualAmount())
		assert.Equal(t, kernel.Money(100), w.SystemFee())
	})

	t.Run("amount above current balance is refused", func(t *testing.T) {
		_, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(1000001), 1000000,
			withdrawal.DefaultFeePolicy(), now)

		require.ErrorIs(t, err, errs.ErrInsufficientBalance)
	})

	t.Run("non-positive amount is refused", func(t *testing.T) {
		_, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(0), 1000000,
			withdrawal.DefaultFeePolicy(), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("account confirmation must match", func(t *testing.T) {
		req := validRequest(1000)
		req.ConfirmedAccountNumber = "0123456788"

		_, err := withdrawal.NewWithdrawal(kernel.NewUUID(), req, 5000, withdrawal.DefaultFeePolicy(), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "confirmedAccountNumber")
	})

	t.Run("bank account fields are required", func(t *testing.T) {
		req := validRequest(1000)
		req.Account.BankName = " "
		req.Account.AccountName = ""

		_, err := withdrawal.NewWithdrawal(kernel.NewUUID(), req, 5000, withdrawal.DefaultFeePolicy(), now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "bankName")
		assert.Contains(t, err.Error(), "bankAccountName")
	})

	t.Run("zero-value fee policy is refused", func(t *testing.T) {
		_, err := withdrawal.NewWithdrawal(kernel.NewUUID(), validRequest(1000), 5000, withdrawal.FeePolicy{}, now)

		require.ErrorIs(t, err, withdrawal.ErrFeePolicyIsNotConstructed)
	})
}

func TestWithdrawal_Approve(t *testing.T) {
	t.Run("pending request", func(t *testing.T) {
		w := newPending(t, 1000)
		admin := kernel.NewUUID()

		require.NoError(t, w.Approve(admin, "checked", now))

		assert.Equal(t, withdrawal.Approved, w.Status())
		assert.Equal(t, "checked", w.AdminNote())
		assert.True(t, admin.IsEqual(*w.ProcessedBy()))
	})

	t.Run("not pending", func(t *testing.T) {
		w := newPending(t, 1000)
		require.NoError(t, w.Approve(kernel.NewUUID(), "", now))

		err := w.Approve(kernel.NewUUID(), "", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "Approved", transitionErr.Current)
		assert.Equal(t, "Approved", transitionErr.Target)
	})
}

func TestWithdrawal_Reject(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		w := newPending(t, 1000)

		require.ErrorIs(t, w.Reject(kernel.NewUUID(), "  ", "", now), errs.ErrValueIsRequired)
		assert.Equal(t, withdrawal.Pending, w.Status())
	})

	t.Run("records the reason", func(t *testing.T) {
		w := newPending(t, 1000)

		require.NoError(t, w.Reject(kernel.NewUUID(), "account holder mismatch", "call driver", now))

		assert.Equal(t, withdrawal.Rejected, w.Status())
		assert.Equal(t, "account holder mismatch", w.RejectionReason())
	})

	t.Run("approved request cannot be rejected", func(t *testing.T) {
		w := newPending(t, 1000)
		require.NoError(t, w.Approve(kernel.NewUUID(), "", now))

		require.ErrorIs(t, w.Reject(kernel.NewUUID(), "changed mind", "", now), errs.ErrInvalidTransition)
	})
}

func TestWithdrawal_Complete(t *testing.T) {
	t.Run("only approved requests complete", func(t *testing.T) {
		w := newPending(t, 1000)

		require.ErrorIs(t, w.ValidateComplete(), errs.ErrInvalidTransition)
		require.ErrorIs(t, w.Complete(kernel.NewUUID(), "", now), errs.ErrInvalidTransition)

		require.NoError(t, w.Approve(kernel.NewUUID(), "ok", now))
		require.NoError(t, w.ValidateComplete())
		require.NoError(t, w.Complete(kernel.NewUUID(), "", now))

		assert.Equal(t, withdrawal.Completed, w.Status())
		assert.Equal(t, "ok", w.AdminNote())
		require.NotNil(t, w.CompletedAt())
	})

	t.Run("second completion is an invalid transition", func(t *testing.T) {
		w := newPending(t, 1000)
		require.NoError(t, w.Approve(kernel.NewUUID(), "", now))
		require.NoError(t, w.Complete(kernel.NewUUID(), "", now))

		require.ErrorIs(t, w.Complete(kernel.NewUUID(), "", now), errs.ErrInvalidTransition)
	})
}

func TestWithdrawal_Cancel(t *testing.T) {
	t.Run("owner cancels a pending request", func(t *testing.T) {
		w := newPending(t, 1000)

		require.NoError(t, w.Cancel(w.DriverID(), now))

		assert.Equal(t, withdrawal.Cancelled, w.Status())
		require.NotNil(t, w.CancelledAt())
	})

	t.Run("another driver cannot cancel", func(t *testing.T) {
		w := newPending(t, 1000)

		require.ErrorIs(t, w.Cancel(kernel.NewUUID(), now), withdrawal.ErrNotOwner)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		w := newPending(t, 1000)
		require.NoError(t, w.Approve(kernel.NewUUID(), "", now))

		require.ErrorIs(t, w.Cancel(w.DriverID(), now), errs.ErrInvalidTransition)
	})
}

func TestRestoreWithdrawal(t *testing.T) {
	t.Run("round trips a snapshot", func(t *testing.T) {
		w := newPending(t, 1000)
		require.NoError(t, w.Reject(kernel.NewUUID(), "duplicate", "", now))

		restored, err := withdrawal.RestoreWithdrawal(w.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, w.Snapshot(), restored.Snapshot())
		assert.Empty(t, restored.DomainEvents())
	})

	t.Run("rejects a broken split", func(t *testing.T) {
		s := newPending(t, 1000).Snapshot()
		s.SystemFee++

		_, err := withdrawal.RestoreWithdrawal(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusFromString(t *testing.T) {
	s, err := withdrawal.StatusFromString("Completed")
	require.NoError(t, err)
	assert.Equal(t, withdrawal.Completed, s)

	_, err = withdrawal.StatusFromString("Paid")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
