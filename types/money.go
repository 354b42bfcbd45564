// Package types provides common types used across the bank.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money parsing errors.
var (
	ErrInvalidMoney     = errors.New("bank: invalid money amount")
	ErrSubCentPrecision = errors.New("bank: amount has more than two decimal places")
	ErrAmountOverflow   = errors.New("bank: amount out of range")
)

// centsPerReal is the number of minor units in one major unit.
const centsPerReal = 100

// Money represents a monetary value in centavos.
// All arithmetic is integer-only; there is no floating point.
//
// Examples:
//   - BRL(150075) = R$ 1500.75
//   - Reais(500) = R$ 500.00
type Money struct {
	Amount int64 `json:"amount"` // Centavos
}

// BRL creates a Money value from centavos.
func BRL(centavos int64) Money { return Money{Amount: centavos} }

// Reais creates a Money value from a whole number of reais.
func Reais(reais int64) Money {
	if reais > math.MaxInt64/centsPerReal || reais < math.MinInt64/centsPerReal {
		panic(fmt.Sprintf("money: %d reais overflows", reais))
	}
	return Money{Amount: reais * centsPerReal}
}

// Zero returns a zero Money value.
func Zero() Money { return Money{} }

// ParseMoney parses a decimal string such as "1500.75" into Money.
// It never rounds: inputs with sub-centavo precision are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero(), fmt.Errorf("%w: empty string", ErrInvalidMoney)
	}
	// Accept the Brazilian decimal comma when no dot is present.
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero(), fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts an arbitrary-precision decimal into Money.
func FromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return Zero(), fmt.Errorf("%w: %s", ErrSubCentPrecision, d.String())
	}
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || cents.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Zero(), fmt.Errorf("%w: %s", ErrAmountOverflow, d.String())
	}
	return Money{Amount: cents.IntPart()}, nil
}

// Decimal returns the amount in reais as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -2)
}

// Arithmetic operations

// Add adds two Money values. Panics on overflow.
func (m Money) Add(other Money) Money {
	sum, err := m.CheckedAdd(other)
	if err != nil {
		panic(fmt.Sprintf("money: overflow adding %d to %d", other.Amount, m.Amount))
	}
	return sum
}

// CheckedAdd adds two Money values, returning ErrAmountOverflow instead of
// wrapping around when the sum leaves the int64 range.
func (m Money) CheckedAdd(other Money) (Money, error) {
	if (other.Amount > 0 && m.Amount > math.MaxInt64-other.Amount) ||
		(other.Amount < 0 && m.Amount < math.MinInt64-other.Amount) {
		return m, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, m.Amount, other.Amount)
	}
	return Money{Amount: m.Amount + other.Amount}, nil
}

// Subtract subtracts another Money value. Panics on overflow.
func (m Money) Subtract(other Money) Money {
	if other.Amount == math.MinInt64 {
		panic("money: overflow negating minimum value")
	}
	return m.Add(Money{Amount: -other.Amount})
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Equal returns true if both Money values are equal.
func (m Money) Equal(other Money) bool { return m.Amount == other.Amount }

// LessThan returns true if this Money is less than other.
func (m Money) LessThan(other Money) bool { return m.Amount < other.Amount }

// GreaterThan returns true if this Money is greater than other.
func (m Money) GreaterThan(other Money) bool { return m.Amount > other.Amount }

// Formatting methods

// FormatMajor returns the amount in reais with two decimals, e.g. "49.00".
func (m Money) FormatMajor() string {
	// Handle sign separately; uint64 holds the magnitude of MinInt64.
	isNegative := m.Amount < 0
	abs := uint64(m.Amount)
	if isNegative {
		abs = uint64(-(m.Amount + 1)) + 1
	}

	result := fmt.Sprintf("%d.%02d", abs/centsPerReal, abs%centsPerReal)
	if isNegative {
		return "-" + result
	}
	return result
}

// String returns a human-readable string with currency symbol, e.g. "R$ 1000.00".
func (m Money) String() string {
	return "R$ " + m.FormatMajor()
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount  int64  `json:"amount"`
		Display string `json:"display"`
	}{
		Amount:  m.Amount,
		Display: m.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. The display field is ignored.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount int64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Amount = raw.Amount
	return nil
}

// Sum calculates the sum of multiple Money values.
func Sum(values ...Money) Money {
	result := Zero()
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
