package pricing

import (
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tier maps a weight range in tons to a per-kilometre rate.
//
// The range is (MinTons, MaxTons]. The first tier of a table may include its lower bound
// by setting IncludeMin, which is how [0.5, 1] is expressed.
type Tier struct {
	MinTons    decimal.Decimal
	MaxTons    decimal.Decimal
	IncludeMin bool
	RatePerKm  kernel.Money
}

// Contains reports whether tons falls within the tier.
func (t Tier) Contains(tons decimal.Decimal) bool {
	if tons.GreaterThan(t.MaxTons) {
		return false
	}
	if t.IncludeMin {
		return tons.GreaterThanOrEqual(t.MinTons)
	}
	return tons.GreaterThan(t.MinTons)
}

// TierTable is an ordered, non-overlapping list of tiers.
type TierTable []Tier

// DefaultTierTable returns the standard rate card:
//
//	[0.5, 1] t  -> 40000 / km
//	(1, 3] t    -> 60000 / km
//	(3, 5] t    -> 80000 / km
//	(5, 10] t   -> 100000 / km
func DefaultTierTable() TierTable {
	return TierTable{
		{MinTons: decimal.RequireFromString("0.5"), MaxTons: decimal.NewFromInt(1), IncludeMin: true, RatePerKm: 40000},
		{MinTons: decimal.NewFromInt(1), MaxTons: decimal.NewFromInt(3), RatePerKm: 60000},
		{MinTons: decimal.NewFromInt(3), MaxTons: decimal.NewFromInt(5), RatePerKm: 80000},
		{MinTons: decimal.NewFromInt(5), MaxTons: decimal.NewFromInt(10), RatePerKm: 100000},
	}
}

// Validate checks that the table is non-empty, ordered and non-overlapping and that every
// rate is positive.
func (tt TierTable) Validate() error {
	if len(tt) == 0 {
		return errs.NewValueIsRequiredError("tiers")
	}

	for i, t := range tt {
		if !t.RatePerKm.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("tiers", fmt.Errorf("tier %d has non-positive rate %d", i, t.RatePerKm))
		}
		if !t.MaxTons.GreaterThan(t.MinTons) {
			return errs.NewValueIsInvalidErrorWithCause("tiers", fmt.Errorf("tier %d has an empty range", i))
		}
		if i > 0 && t.MinTons.LessThan(tt[i-1].MaxTons) {
			return errs.NewValueIsInvalidErrorWithCause("tiers", fmt.Errorf("tier %d overlaps tier %d", i, i-1))
		}
	}

	return nil
}

// RateForTons returns the rate of the tier that contains tons.
//
// Weights outside every tier (lighter than the first tier or heavier than the last)
// are charged at the last tier's rate rather than rejected.
func (tt TierTable) RateForTons(tons decimal.Decimal) kernel.Money {
	for _, t := range tt {
		if t.Contains(tons) {
			return t.RatePerKm
		}
	}
	return tt[len(tt)-1].RatePerKm
}

// RateForWeightKg converts kilograms to tons and looks up the rate.
func (tt TierTable) RateForWeightKg(weightKg float64) kernel.Money {
	return tt.RateForTons(decimal.NewFromFloat(weightKg).Div(decimal.NewFromInt(1000)))
}

// FindPricePerKmByWeightKg looks up the per-kilometre rate for weightKg in the default tier table.
func FindPricePerKmByWeightKg(weightKg float64) kernel.Money {
	return DefaultTierTable().RateForWeightKg(weightKg)
}
