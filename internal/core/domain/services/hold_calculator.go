package services

import (
	"fmt"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AgentTier classifies agents for hold percentage resolution.
type AgentTier int

const (
	// TierUnknown represents an invalid or undefined tier.
	TierUnknown AgentTier = iota

	// TierInternal is a platform-employed agent; no hold is required.
	TierInternal

	// TierVerified is an identity-verified external agent.
	TierVerified

	// TierUnverified is an external agent without identity verification;
	// the full order value is withheld.
	TierUnverified
)

func getTierStrings() map[AgentTier]string {
	return map[AgentTier]string{
		TierUnknown:    "unknown",
		TierInternal:   "internal",
		TierVerified:   "verified",
		TierUnverified: "unverified",
	}
}

// Validate checks that the AgentTier is one of the defined tiers.
func (t AgentTier) Validate() error {
	if t == TierUnknown {
		return errs.NewValueIsInvalidErrorWithCause("agent tier is invalid",
			fmt.Errorf("%d is not a valid agent tier", t))
	}
	if _, ok := getTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("agent tier is invalid",
			fmt.Errorf("%d is not a valid agent tier", t))
	}
	return nil
}

// String returns the lowercase tier name.
func (t AgentTier) String() string {
	if str, ok := getTierStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// TierFromString parses an agent tier name.
func TierFromString(s string) (AgentTier, error) {
	for tier, str := range getTierStrings() {
		if str == s && tier != TierUnknown {
			return tier, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("agent tier is invalid",
		fmt.Errorf("%q is not a valid agent tier name", s))
}

// HoldBreakdown is the result of a hold calculation. All amounts are rounded
// half-up to two decimal places; the calculation itself runs at full decimal
// precision.
type HoldBreakdown struct {
	// HoldAmount is the withheld share of the order subtotal.
	HoldAmount kernel.Money

	// ChargeAmount is the platform charge taken on the hold amount.
	ChargeAmount kernel.Money

	// TotalCharge is HoldAmount + ChargeAmount, the sum the agent's account
	// must cover.
	TotalCharge kernel.Money
}

// HoldCalculator is a domain service computing the funds to withhold on an
// agent's account when the agent claims an order.
//
// Business rules:
//   - holdAmount = subtotal * holdPercentage / 100
//   - chargeAmount = holdAmount * chargePercentage / 100
//   - totalCharge = holdAmount + chargeAmount
//   - A zero subtotal yields a zero breakdown.
//   - Rounding (half-up, 2 decimals) is applied to outputs only; intermediate
//     values keep full precision.
//
// The default hold percentage applies to verified agents; per-tier
// percentages override it via CalculateForTier.
type HoldCalculator struct {
	holdPercentage   decimal.Decimal
	chargePercentage decimal.Decimal
	tierPercentages  map[AgentTier]decimal.Decimal
}

const (
	defaultHoldPercentage       = 80
	defaultChargePercentage     = "3.5"
	defaultInternalPercentage   = 0
	defaultUnverifiedPercentage = 100
)

// NewHoldCalculator creates a HoldCalculator with the platform defaults:
// 80% hold, 3.5% charge, and per-tier hold percentages of 0 (internal),
// 80 (verified) and 100 (unverified).
func NewHoldCalculator() HoldCalculator {
	charge, _ := decimal.NewFromString(defaultChargePercentage)
	return HoldCalculator{
		holdPercentage:   decimal.NewFromInt(defaultHoldPercentage),
		chargePercentage: charge,
		tierPercentages: map[AgentTier]decimal.Decimal{
			TierInternal:   decimal.NewFromInt(defaultInternalPercentage),
			TierVerified:   decimal.NewFromInt(defaultHoldPercentage),
			TierUnverified: decimal.NewFromInt(defaultUnverifiedPercentage),
		},
	}
}

// NewHoldCalculatorWithPercentages creates a HoldCalculator with explicit
// hold and charge percentages. Per-tier overrides keep their defaults except
// the verified tier, which follows the given hold percentage.
func NewHoldCalculatorWithPercentages(holdPercentage, chargePercentage decimal.Decimal) (HoldCalculator, error) {
	hundred := decimal.NewFromInt(100)
	if holdPercentage.IsNegative() || holdPercentage.GreaterThan(hundred) {
		return HoldCalculator{}, errs.NewValueIsOutOfRangeError(
			"holdPercentage", holdPercentage, 0, 100)
	}
	if chargePercentage.IsNegative() || chargePercentage.GreaterThan(hundred) {
		return HoldCalculator{}, errs.NewValueIsOutOfRangeError(
			"chargePercentage", chargePercentage, 0, 100)
	}

	return HoldCalculator{
		holdPercentage:   holdPercentage,
		chargePercentage: chargePercentage,
		tierPercentages: map[AgentTier]decimal.Decimal{
			TierInternal:   decimal.NewFromInt(defaultInternalPercentage),
			TierVerified:   holdPercentage,
			TierUnverified: decimal.NewFromInt(defaultUnverifiedPercentage),
		},
	}, nil
}

// Calculate computes the hold breakdown for an order subtotal using the
// default hold percentage.
func (c HoldCalculator) Calculate(subtotal kernel.Money) (HoldBreakdown, error) {
	return c.calculate(subtotal, c.holdPercentage)
}

// CalculateForTier computes the hold breakdown using the hold percentage of
// the agent's tier. Internal agents get a zero breakdown regardless of the
// subtotal.
func (c HoldCalculator) CalculateForTier(tier AgentTier, subtotal kernel.Money) (HoldBreakdown, error) {
	if err := tier.Validate(); err != nil {
		return HoldBreakdown{}, err
	}
	return c.calculate(subtotal, c.tierPercentages[tier])
}

func (c HoldCalculator) calculate(subtotal kernel.Money, holdPercentage decimal.Decimal) (HoldBreakdown, error) {
	if err := subtotal.Validate(); err != nil {
		return HoldBreakdown{}, err
	}
	if subtotal.IsNegative() {
		return HoldBreakdown{}, errs.NewValueIsInvalidError("subtotal must not be negative")
	}

	holdAmount := subtotal.Percent(holdPercentage)
	chargeAmount := holdAmount.Percent(c.chargePercentage)

	totalCharge, err := holdAmount.Add(chargeAmount)
	if err != nil {
		return HoldBreakdown{}, err
	}

	return HoldBreakdown{
		HoldAmount:   holdAmount.Rounded(),
		ChargeAmount: chargeAmount.Rounded(),
		TotalCharge:  totalCharge.Rounded(),
	}, nil
}
