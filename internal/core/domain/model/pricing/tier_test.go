package pricing_test

import (
	"testing"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPricePerKmByWeightKg(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		expected kernel.Money
	}{
		{"lower bound of first tier is inclusive", 500, 40000},
		{"inside first tier", 750, 40000},
		{"upper bound of first tier", 1000, 40000},
		{"just above one ton", 1000.5, 60000},
		{"two tons", 2000, 60000},
		{"upper bound of second tier", 3000, 60000},
		{"four tons", 4000, 80000},
		{"upper bound of third tier", 5000, 80000},
		{"seven tons", 7000, 100000},
		{"upper bound of last tier", 10000, 100000},
		{"heavier than every tier falls back to last tier", 10001, 100000},
		{"far heavier than every tier", 250000, 100000},
		{"lighter than every tier falls back to last tier", 200, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.FindPricePerKmByWeightKg(tt.weightKg))
		})
	}
}

func TestFindPricePerKmByWeightKg_AlwaysFromTable(t *testing.T) {
	rates := map[kernel.Money]bool{}
	for _, tier := range pricing.DefaultTierTable() {
		rates[tier.RatePerKm] = true
	}

	for w := 1.0; w <= 20000; w += 37.5 {
		assert.True(t, rates[pricing.FindPricePerKmByWeightKg(w)], "weight %v", w)
	}
}

func TestTierTable_Validate(t *testing.T) {
	t.Run("default table is valid", func(t *testing.T) {
		require.NoError(t, pricing.DefaultTierTable().Validate())
	})

	t.Run("empty table is rejected", func(t *testing.T) {
		require.ErrorIs(t, pricing.TierTable{}.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("overlapping tiers are rejected", func(t *testing.T) {
		table := pricing.TierTable{
			{MinTons: decimal.NewFromInt(0), MaxTons: decimal.NewFromInt(3), RatePerKm: 1},
			{MinTons: decimal.NewFromInt(2), MaxTons: decimal.NewFromInt(5), RatePerKm: 2},
		}
		require.ErrorIs(t, table.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		table := pricing.TierTable{
			{MinTons: decimal.NewFromInt(0), MaxTons: decimal.NewFromInt(3), RatePerKm: 0},
		}
		require.ErrorIs(t, table.Validate(), errs.ErrValueIsInvalid)
	})
}
