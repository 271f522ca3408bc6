package withdrawal

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

// DefaultFeeRate is the platform's share of every withdrawal.
const DefaultFeeRate = "0.2"

var ErrFeePolicyIsNotConstructed = errors.New("FeePolicy must be created via NewFeePolicy")

// FeePolicy splits a requested amount into the part paid out to the driver and the
// platform's system fee.
type FeePolicy struct {
	feeRate kernel.Rate
	guard   guard.ConstructorGuard
}

func NewFeePolicy(feeRate kernel.Rate) FeePolicy {
	return FeePolicy{
		feeRate: feeRate,
		guard:   guard.NewConstructorGuard(),
	}
}

// DefaultFeePolicy keeps 20% as system fee.
func DefaultFeePolicy() FeePolicy {
	return NewFeePolicy(kernel.MustRate(DefaultFeeRate))
}

func (p FeePolicy) Validate() error {
	return p.guard.Validate(ErrFeePolicyIsNotConstructed)
}

func (p FeePolicy) FeeRate() kernel.Rate {
	return p.feeRate
}

// Split returns actual = floor(requested × (1 - feeRate)) and fee = requested - actual.
//
// Example:
//
//	actual, fee := withdrawal.DefaultFeePolicy().Split(1000000)
//	// actual = 800000, fee = 200000
func (p FeePolicy) Split(requested kernel.Money) (actual, fee kernel.Money) {
	return requested.Split(p.feeRate.Complement())
}
