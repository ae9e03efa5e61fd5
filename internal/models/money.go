package models

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary value with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromString creates a Money value from a string amount.
func NewMoneyFromString(amount, currency string) (Money, error) {
	dec, err := ParseAmount(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{
		Amount:   dec,
		Currency: currency,
	}, nil
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	return Money{
		Amount:   m.Amount.Abs(),
		Currency: m.Currency,
	}
}

// String returns a string representation of the money value
func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

var amountNoise = strings.NewReplacer(
	" ", "",
	"'", "",
	"CHF", "",
	"EUR", "",
	"USD", "",
	"$", "",
	"€", "",
	"£", "",
)

// ParseAmount parses a user-typed amount. Currency markers, spaces and
// apostrophe thousand separators are stripped; a lone comma is read as the
// decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountNoise.Replace(strings.TrimSpace(s))
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': empty", s)
	}
	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", s, err)
	}
	if err := checkAmountRange(dec); err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", s, err)
	}
	return dec, nil
}

// Bounds on parsed amounts. Formatting a decimal costs one byte per digit,
// so an exponent like 1e10000000 must be rejected before anything prints it.
const (
	MaxAmountExponent      = 64
	MaxAmountIntegerDigits = 32
)

func checkAmountRange(d decimal.Decimal) error {
	exp := d.Exponent()
	if exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return fmt.Errorf("exponent %d out of range", exp)
	}
	coeff := new(big.Int).Abs(d.Coefficient())
	if coeff.Sign() == 0 {
		return nil
	}
	if digits := len(coeff.String()) + int(exp); digits > MaxAmountIntegerDigits {
		return fmt.Errorf("more than %d integer digits", MaxAmountIntegerDigits)
	}
	return nil
}

// Positive returns the magnitude of d. Amount bounds are always compared as
// positive numbers regardless of the sign convention of the transaction.
func Positive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return d.Neg()
	}
	return d
}

// ParsePositiveAmount is ParseAmount followed by Positive.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	return Positive(d), nil
}
