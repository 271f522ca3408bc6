package kernel

import (
	"fmt"

	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rate is a fraction in the inclusive range [0, 1], such as a commission or a withdrawal payout share.
// It is backed by an exact decimal so that "0.8" is 0.8 and not 0.8000000000000000444.
type Rate struct {
	value decimal.Decimal
}

// NewRate validates that value lies within [0, 1].
func NewRate(value decimal.Decimal) (Rate, error) {
	if value.LessThan(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(1)) {
		return Rate{}, errs.NewValueIsOutOfRangeError("rate", value.String(), "0", "1")
	}
	return Rate{value: value}, nil
}

// RateFromString parses a decimal string such as "0.2".
func RateFromString(s string) (Rate, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, errs.NewValueIsInvalidErrorWithCause("rate", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewRate(value)
}

// MustRate is RateFromString for package-level defaults and tests. It panics on invalid input.
func MustRate(s string) Rate {
	r, err := RateFromString(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Decimal returns the underlying decimal value.
func (r Rate) Decimal() decimal.Decimal {
	return r.value
}

// Complement returns 1 - r.
func (r Rate) Complement() Rate {
	return Rate{value: decimal.NewFromInt(1).Sub(r.value)}
}

func (r Rate) String() string {
	return r.value.String()
}
