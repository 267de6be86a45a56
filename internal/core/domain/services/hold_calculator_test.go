package services

import (
	"testing"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount, "XAF")
	require.NoError(t, err)
	return m
}

func assertAmount(t *testing.T, expected string, m kernel.Money) {
	t.Helper()
	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(want), "expected %s, got %s", expected, m.Amount())
}

func TestHoldCalculator_Calculate(t *testing.T) {
	calc := NewHoldCalculator()

	t.Run("default percentages", func(t *testing.T) {
		breakdown, err := calc.Calculate(mustMoney(t, 1000))
		require.NoError(t, err)

		assertAmount(t, "800", breakdown.HoldAmount)
		assertAmount(t, "28", breakdown.ChargeAmount)
		assertAmount(t, "828", breakdown.TotalCharge)
	})

	t.Run("zero subtotal yields zero breakdown", func(t *testing.T) {
		breakdown, err := calc.Calculate(mustMoney(t, 0))
		require.NoError(t, err)

		assert.True(t, breakdown.HoldAmount.IsZero())
		assert.True(t, breakdown.ChargeAmount.IsZero())
		assert.True(t, breakdown.TotalCharge.IsZero())
	})

	t.Run("rounding happens at output only", func(t *testing.T) {
		// 33.33 * 80% = 26.664; charge = 26.664 * 3.5% = 0.93324;
		// total = 27.59724. Each output rounds half-up independently.
		breakdown, err := calc.Calculate(mustMoney(t, 33.33))
		require.NoError(t, err)

		assertAmount(t, "26.66", breakdown.HoldAmount)
		assertAmount(t, "0.93", breakdown.ChargeAmount)
		assertAmount(t, "27.6", breakdown.TotalCharge)
	})

	t.Run("half-up at the boundary", func(t *testing.T) {
		// 12.50 * 80% = 10; charge = 0.35; total = 10.35. Use a subtotal
		// that puts the charge exactly on a half cent: 16.25 * 80% = 13;
		// 13 * 3.5% = 0.455 which rounds up to 0.46.
		breakdown, err := calc.Calculate(mustMoney(t, 16.25))
		require.NoError(t, err)

		assertAmount(t, "13", breakdown.HoldAmount)
		assertAmount(t, "0.46", breakdown.ChargeAmount)
		assertAmount(t, "13.46", breakdown.TotalCharge)
	})

	t.Run("negative subtotal is rejected", func(t *testing.T) {
		_, err := calc.Calculate(mustMoney(t, -10))
		assert.Error(t, err)
	})

	t.Run("not constructed subtotal is rejected", func(t *testing.T) {
		_, err := calc.Calculate(kernel.Money{})
		assert.Error(t, err)
	})
}

func TestHoldCalculator_CalculateForTier(t *testing.T) {
	calc := NewHoldCalculator()
	subtotal := mustMoney(t, 1000)

	t.Run("internal agents are not held", func(t *testing.T) {
		breakdown, err := calc.CalculateForTier(TierInternal, subtotal)
		require.NoError(t, err)
		assert.True(t, breakdown.TotalCharge.IsZero())
	})

	t.Run("verified agents follow the default", func(t *testing.T) {
		breakdown, err := calc.CalculateForTier(TierVerified, subtotal)
		require.NoError(t, err)
		assertAmount(t, "828", breakdown.TotalCharge)
	})

	t.Run("unverified agents are held in full", func(t *testing.T) {
		breakdown, err := calc.CalculateForTier(TierUnverified, subtotal)
		require.NoError(t, err)
		assertAmount(t, "1000", breakdown.HoldAmount)
		assertAmount(t, "35", breakdown.ChargeAmount)
		assertAmount(t, "1035", breakdown.TotalCharge)
	})

	t.Run("unknown tier is rejected", func(t *testing.T) {
		_, err := calc.CalculateForTier(TierUnknown, subtotal)
		assert.Error(t, err)
	})
}

func TestNewHoldCalculatorWithPercentages(t *testing.T) {
	t.Run("custom percentages apply", func(t *testing.T) {
		calc, err := NewHoldCalculatorWithPercentages(
			decimal.NewFromInt(50), decimal.NewFromInt(2))
		require.NoError(t, err)

		breakdown, err := calc.Calculate(mustMoney(t, 1000))
		require.NoError(t, err)
		assertAmount(t, "500", breakdown.HoldAmount)
		assertAmount(t, "10", breakdown.ChargeAmount)
		assertAmount(t, "510", breakdown.TotalCharge)

		// The verified tier tracks the configured default.
		tiered, err := calc.CalculateForTier(TierVerified, mustMoney(t, 1000))
		require.NoError(t, err)
		assertAmount(t, "510", tiered.TotalCharge)
	})

	t.Run("percentages outside 0..100 are rejected", func(t *testing.T) {
		_, err := NewHoldCalculatorWithPercentages(
			decimal.NewFromInt(101), decimal.NewFromInt(2))
		assert.Error(t, err)

		_, err = NewHoldCalculatorWithPercentages(
			decimal.NewFromInt(80), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}
