package kernel

import (
	"fmt"

	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when two Money values with different
// currencies are combined or compared.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("currencies do not match")

// Currency is a value object holding an ISO-4217 style currency code.
// The zero value is invalid; use NewCurrency to construct one.
type Currency string

// NewCurrency validates and creates a Currency from its string code.
// The code must be exactly three uppercase letters (e.g. "XAF", "USD").
func NewCurrency(code string) (Currency, error) {
	c := Currency(code)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the currency code is three uppercase letters.
func (c Currency) Validate() error {
	if len(c) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency is invalid",
			fmt.Errorf("%q is not a three-letter code", string(c)))
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency is invalid",
				fmt.Errorf("%q contains non-uppercase characters", string(c)))
		}
	}
	return nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// Money is an immutable value object representing an amount of a single currency.
// Arithmetic is performed with exact decimal precision; rounding to the currency
// minor unit happens only when a final amount is taken via Rounded.
//
// Money is a value object: operations return new instances and never mutate
// the receiver. A zero-value Money is invalid and must be created via NewMoney,
// MoneyFromFloat, or ZeroMoney.
//
// Example:
//
//	subtotal, _ := kernel.MoneyFromFloat(1000, "XAF")
//	hold := subtotal.Percent(decimal.NewFromInt(80))
//	fmt.Println(hold.Rounded()) // 800.00 XAF
type Money struct {
	amount   decimal.Decimal
	currency Currency
	guard    ConstructorGuard
}

// ErrMoneyIsNotConstructed indicates a Money value that was not created
// through one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, MoneyFromFloat, or ZeroMoney")

// NewMoney creates a Money value from a decimal amount and currency.
// Negative amounts are permitted; callers that forbid them must check IsNegative.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return Money{
		amount:   amount,
		currency: currency,
		guard:    NewConstructorGuard(),
	}, nil
}

// MoneyFromFloat creates a Money value from a float64 amount.
// Intended for boundary code (HTTP payloads, configuration); domain code
// should prefer NewMoney with an exact decimal.
func MoneyFromFloat(amount float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// ZeroMoney creates a zero amount in the given currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate ensures the Money value was properly constructed.
func (m Money) Validate() error {
	if err := m.guard.Validate(ErrMoneyIsNotConstructed); err != nil {
		return err
	}
	return m.currency.Validate()
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsEqual compares amount and currency for exact equality.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Add returns the sum of two Money values.
// Returns ErrCurrencyMismatch when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Sub returns the difference of two Money values.
// Returns ErrCurrencyMismatch when the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// GreaterThanOrEqual reports whether m covers other.
// Returns ErrCurrencyMismatch when the currencies differ.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// Percent returns the given percentage of the amount at full precision.
// No rounding is applied; use Rounded on the final result of a calculation.
func (m Money) Percent(percentage decimal.Decimal) Money {
	result := m.amount.Mul(percentage).Div(decimal.NewFromInt(100))
	return Money{
		amount:   result,
		currency: m.currency,
		guard:    NewConstructorGuard(),
	}
}

// Rounded returns the amount rounded half-up to two decimal places.
// This is the only place rounding happens; intermediate results keep
// full precision to avoid accumulation drift.
func (m Money) Rounded() Money {
	return Money{
		amount:   m.amount.Round(2),
		currency: m.currency,
		guard:    NewConstructorGuard(),
	}
}

// String formats the amount with its currency code, e.g. "800.00 XAF".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
