package ledger_test

import (
	"testing"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func ledgerWithBalance(t *testing.T, balance kernel.Money) *ledger.DriverLedger {
	t.Helper()
	l, err := ledger.RestoreDriverLedger(kernel.NewUUID(), balance, now, 1)
	require.NoError(t, err)
	return l
}

func TestNewDriverLedger(t *testing.T) {
	l, err := ledger.NewDriverLedger(kernel.NewUUID(), now)

	require.NoError(t, err)
	require.NoError(t, l.Validate())
	assert.Equal(t, kernel.Money(0), l.Balance())

	_, err = ledger.NewDriverLedger(kernel.UUID{}, now)
	require.Error(t, err)
}

func TestRestoreDriverLedger_RejectsNegativeBalance(t *testing.T) {
	_, err := ledger.RestoreDriverLedger(kernel.NewUUID(), -1, now, 1)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDriverLedger_Credit(t *testing.T) {
	t.Run("increases balance and journals the entry", func(t *testing.T) {
		l := ledgerWithBalance(t, 100)
		ref := kernel.NewUUID()

		entry, err := l.Credit(ledger.ItemPayout, 600000, ref, now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(600100), l.Balance())
		assert.Equal(t, kernel.Money(600100), entry.BalanceAfter)
		assert.Equal(t, kernel.Money(600000), entry.SignedAmount())
		assert.True(t, ref.IsEqual(entry.ReferenceID))
		assert.Equal(t, []ledger.Entry{entry}, l.NewEntries())
		require.Len(t, l.DomainEvents(), 1)
	})

	t.Run("rejects debit kinds and non-positive amounts", func(t *testing.T) {
		l := ledgerWithBalance(t, 0)

		_, err := l.Credit(ledger.ViolationPenalty, 10, kernel.NewUUID(), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = l.Credit(ledger.ItemPayout, 0, kernel.NewUUID(), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = l.Credit(ledger.ItemPayout, 10, kernel.UUID{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		assert.Empty(t, l.NewEntries())
	})
}

func TestDriverLedger_Debit(t *testing.T) {
	t.Run("decreases balance", func(t *testing.T) {
		l := ledgerWithBalance(t, 1500000)

		entry, err := l.Debit(ledger.WithdrawalSettlement, 1000000, kernel.NewUUID(), now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(500000), l.Balance())
		assert.Equal(t, kernel.Money(-1000000), entry.SignedAmount())
	})

	t.Run("may bring the balance to exactly zero", func(t *testing.T) {
		l := ledgerWithBalance(t, 50000)

		_, err := l.Debit(ledger.ViolationPenalty, 50000, kernel.NewUUID(), now)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(0), l.Balance())
	})

	t.Run("fails closed when the balance is too small", func(t *testing.T) {
		l := ledgerWithBalance(t, 49999)

		_, err := l.Debit(ledger.ViolationPenalty, 50000, kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrInsufficientBalance)
		var balanceErr *errs.InsufficientBalanceError
		require.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, int64(49999), balanceErr.Balance)
		assert.Equal(t, int64(50000), balanceErr.Requested)
		assert.Equal(t, kernel.Money(49999), l.Balance())
		assert.Empty(t, l.NewEntries())
		assert.Empty(t, l.DomainEvents())
	})

	t.Run("rejects credit kinds", func(t *testing.T) {
		l := ledgerWithBalance(t, 100)

		_, err := l.Debit(ledger.ItemPayout, 10, kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDriverLedger_BalanceNeverNegative(t *testing.T) {
	l := ledgerWithBalance(t, 0)
	moves := []struct {
		credit bool
		amount kernel.Money
	}{
		{true, 300}, {false, 200}, {false, 200}, {true, 50}, {false, 150}, {false, 1},
	}

	for _, m := range moves {
		if m.credit {
			_, _ = l.Credit(ledger.ItemPayout, m.amount, kernel.NewUUID(), now)
		} else {
			_, _ = l.Debit(ledger.WithdrawalSettlement, m.amount, kernel.NewUUID(), now)
		}
		assert.GreaterOrEqual(t, l.Balance(), kernel.Money(0))
	}

	var sum kernel.Money
	for _, e := range l.NewEntries() {
		sum += e.SignedAmount()
	}
	assert.Equal(t, l.Balance(), sum)
	assert.Equal(t, kernel.Money(0), l.Balance())
}

func TestEntryKindFromString(t *testing.T) {
	k, err := ledger.EntryKindFromString("ViolationPenalty")
	require.NoError(t, err)
	assert.Equal(t, ledger.ViolationPenalty, k)

	_, err = ledger.EntryKindFromString("Bonus")
	require.Error(t, err)
}
