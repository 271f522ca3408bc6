package kernel

import (
	"fmt"

	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest currency unit. The service works in a single
// currency, so no currency code is carried.
//
// Arithmetic never rounds implicitly: fractional results of rate multiplication are
// resolved with explicit Floor or Round calls on a decimal intermediate.
type Money int64

// NewMoney validates that amount is not negative.
func NewMoney(amount int64) (Money, error) {
	m := Money(amount)
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d is negative", int64(m)))
	}
	return nil
}

// Int64 returns the raw amount.
func (m Money) Int64() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other. Callers are responsible for guarding against a negative result.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// FloorMul returns floor(m × rate).
func (m Money) FloorMul(rate Rate) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(rate.Decimal()).Floor().IntPart())
}

// Split divides m into a share of floor(m × rate) and the remainder, so that
// share + remainder == m holds for every amount.
//
// Example:
//
//	actual, fee := kernel.Money(1_000_001).Split(kernel.MustRate("0.8"))
//	// actual = 800000, fee = 200001
func (m Money) Split(rate Rate) (share Money, remainder Money) {
	share = m.FloorMul(rate)
	return share, m - share
}

// String formats the amount as a plain integer.
func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}

// SumMoney adds up amounts; the sum of an empty sequence is 0.
func SumMoney(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
