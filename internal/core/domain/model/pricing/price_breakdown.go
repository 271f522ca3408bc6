package pricing

import (
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

// ErrPriceBreakdownIsNotConstructed is returned when a zero-value PriceBreakdown is validated.
var ErrPriceBreakdownIsNotConstructed = errors.New("PriceBreakdown must be created via Calculator.Price or RestorePriceBreakdown")

// PriceBreakdown is the immutable result of pricing one item.
//
// Invariant: Total() == DistanceCost() + LoadCost() + InsuranceFee(), every component non-negative.
type PriceBreakdown struct {
	basePerKm    kernel.Money
	distanceCost kernel.Money
	loadCost     kernel.Money
	insuranceFee kernel.Money
	total        kernel.Money
	guard        guard.ConstructorGuard
}

// RestorePriceBreakdown rebuilds a breakdown from persisted components and re-checks the
// total invariant, so a corrupted row cannot produce an inconsistent price.
func RestorePriceBreakdown(basePerKm, distanceCost, loadCost, insuranceFee, total kernel.Money) (PriceBreakdown, error) {
	if err := errors.Join(
		basePerKm.Validate(),
		distanceCost.Validate(),
		loadCost.Validate(),
		insuranceFee.Validate(),
	); err != nil {
		return PriceBreakdown{}, err
	}

	sum := kernel.SumMoney(distanceCost, loadCost, insuranceFee)
	if sum != total {
		return PriceBreakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"price breakdown",
			fmt.Errorf("total %d does not equal the sum of its components %d", total, sum),
		)
	}

	return newPriceBreakdown(basePerKm, distanceCost, loadCost, insuranceFee), nil
}

func newPriceBreakdown(basePerKm, distanceCost, loadCost, insuranceFee kernel.Money) PriceBreakdown {
	return PriceBreakdown{
		basePerKm:    basePerKm,
		distanceCost: distanceCost,
		loadCost:     loadCost,
		insuranceFee: insuranceFee,
		total:        kernel.SumMoney(distanceCost, loadCost, insuranceFee),
		guard:        guard.NewConstructorGuard(),
	}
}

func (p PriceBreakdown) Validate() error {
	return p.guard.Validate(ErrPriceBreakdownIsNotConstructed)
}

func (p PriceBreakdown) BasePerKm() kernel.Money    { return p.basePerKm }
func (p PriceBreakdown) DistanceCost() kernel.Money { return p.distanceCost }
func (p PriceBreakdown) LoadCost() kernel.Money     { return p.loadCost }
func (p PriceBreakdown) InsuranceFee() kernel.Money { return p.insuranceFee }
func (p PriceBreakdown) Total() kernel.Money        { return p.total }

// IsEqual compares breakdowns component by component.
func (p PriceBreakdown) IsEqual(other PriceBreakdown) bool {
	return p.basePerKm == other.basePerKm &&
		p.distanceCost == other.distanceCost &&
		p.loadCost == other.loadCost &&
		p.insuranceFee == other.insuranceFee
}

// SumTotals returns the sum of the breakdowns' totals. An empty sequence sums to 0.
func SumTotals(breakdowns ...PriceBreakdown) kernel.Money {
	var total kernel.Money
	for _, b := range breakdowns {
		total = total.Add(b.Total())
	}
	return total
}
