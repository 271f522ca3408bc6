package pricing

import (
	"errors"
	"fmt"
	"math"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Default fee constants of the standard rate card.
const (
	DefaultLoadingFee      kernel.Money = 50000
	DefaultInsuranceFeeMin kernel.Money = 100000
	DefaultInsuranceFeeMax kernel.Money = 200000
)

// Upper bounds of a single item.
const (
	MaxWeightKg   = 100_000
	MaxDistanceKm = 20_000
)

var maxMoney = decimal.NewFromInt(math.MaxInt64)

// Config holds the pricing constants. It is injected into NewCalculator so call sites never
// hard-code fees.
type Config struct {
	Tiers           TierTable
	LoadingFee      kernel.Money
	InsuranceFeeMin kernel.Money
	InsuranceFeeMax kernel.Money
}

// DefaultConfig returns the standard rate card.
func DefaultConfig() Config {
	return Config{
		Tiers:           DefaultTierTable(),
		LoadingFee:      DefaultLoadingFee,
		InsuranceFeeMin: DefaultInsuranceFeeMin,
		InsuranceFeeMax: DefaultInsuranceFeeMax,
	}
}

func (c Config) Validate() error {
	var rangeErr error
	if c.InsuranceFeeMin > c.InsuranceFeeMax {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("insurance fee range",
			fmt.Errorf("min %d is greater than max %d", c.InsuranceFeeMin, c.InsuranceFeeMax))
	}

	return errors.Join(
		c.Tiers.Validate(),
		c.LoadingFee.Validate(),
		c.InsuranceFeeMin.Validate(),
		rangeErr,
	)
}

// Input describes the item being priced.
//
// InsuranceFee is only read when InsuranceSelected is true.
type Input struct {
	WeightKg          float64
	DistanceKm        float64
	LoadingAssist     bool
	InsuranceSelected bool
	InsuranceFee      kernel.Money
}

// Calculator prices items against a fixed Config.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg and returns a Calculator bound to it.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the constants the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// RatePerKm returns the per-kilometre rate for weightKg.
func (c *Calculator) RatePerKm(weightKg float64) kernel.Money {
	return c.cfg.Tiers.RateForWeightKg(weightKg)
}

// Price computes the breakdown of one item:
//
//	distanceCost = round(distanceKm × ratePerKm)
//	loadCost     = loadingAssist ? LoadingFee : 0
//	insuranceFee = insuranceSelected ? input.InsuranceFee : 0
//	total        = distanceCost + loadCost + insuranceFee
//
// Example:
//
//	calc, _ := pricing.NewCalculator(pricing.DefaultConfig())
//	b, _ := calc.Price(pricing.Input{WeightKg: 2000, DistanceKm: 10, LoadingAssist: true,
//	    InsuranceSelected: true, InsuranceFee: 100000})
//	// b.BasePerKm() = 60000, b.DistanceCost() = 600000, b.Total() = 750000
func (c *Calculator) Price(in Input) (PriceBreakdown, error) {
	if err := c.validateInput(in); err != nil {
		return PriceBreakdown{}, err
	}

	rate := c.RatePerKm(in.WeightKg)
	distance := decimal.NewFromFloat(in.DistanceKm).Mul(decimal.NewFromInt(rate.Int64())).Round(0)

	var loadCost kernel.Money
	if in.LoadingAssist {
		loadCost = c.cfg.LoadingFee
	}

	var insuranceFee kernel.Money
	if in.InsuranceSelected {
		insuranceFee = in.InsuranceFee
	}

	total := distance.Add(decimal.NewFromInt(loadCost.Int64())).Add(decimal.NewFromInt(insuranceFee.Int64()))
	if total.GreaterThan(maxMoney) {
		return PriceBreakdown{}, errs.NewValueIsOutOfRangeError("total", total.String(), 0, int64(math.MaxInt64))
	}

	return newPriceBreakdown(rate, kernel.Money(distance.IntPart()), loadCost, insuranceFee), nil
}

// Reprice recomputes the breakdown for a changed insurance selection, keeping everything
// else from in.
func (c *Calculator) Reprice(in Input, insuranceSelected bool, insuranceFee kernel.Money) (PriceBreakdown, error) {
	in.InsuranceSelected = insuranceSelected
	in.InsuranceFee = insuranceFee
	return c.Price(in)
}

func (c *Calculator) validateInput(in Input) error {
	var weightErr, distanceErr, insuranceErr error

	switch {
	case math.IsNaN(in.WeightKg) || math.IsInf(in.WeightKg, 0):
		weightErr = errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not a finite number", in.WeightKg))
	case in.WeightKg <= 0:
		weightErr = errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not greater than 0", in.WeightKg))
	case in.WeightKg > MaxWeightKg:
		weightErr = errs.NewValueIsOutOfRangeError("weightKg", in.WeightKg, 0, MaxWeightKg)
	}

	switch {
	case math.IsNaN(in.DistanceKm) || math.IsInf(in.DistanceKm, 0):
		distanceErr = errs.NewValueIsInvalidErrorWithCause("distanceKm", fmt.Errorf("%v is not a finite number", in.DistanceKm))
	case in.DistanceKm < 0:
		distanceErr = errs.NewValueIsInvalidErrorWithCause("distanceKm", fmt.Errorf("%v is negative", in.DistanceKm))
	case in.DistanceKm > MaxDistanceKm:
		distanceErr = errs.NewValueIsOutOfRangeError("distanceKm", in.DistanceKm, 0, MaxDistanceKm)
	}

	if in.InsuranceSelected &&
		(in.InsuranceFee < c.cfg.InsuranceFeeMin || in.InsuranceFee > c.cfg.InsuranceFeeMax) {
		insuranceErr = errs.NewValueIsOutOfRangeError("insuranceFee",
			in.InsuranceFee.Int64(), c.cfg.InsuranceFeeMin.Int64(), c.cfg.InsuranceFeeMax.Int64())
	}

	return errors.Join(weightErr, distanceErr, insuranceErr)
}
