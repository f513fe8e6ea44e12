package nummi

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// amountRE is the grammar accepted for a monetary amount in a ledger file.
var amountRE = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact signed decimal value, used for every monetary value and rate.
//
// The zero value is 0.
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount for an integer or a decimal.
func A[T int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses an amount in the "[-]digits[.digits]" form.
func ParseAmount(s string) (Amount, error) {
	if !amountRE.MatchString(s) {
		return Amount{}, fmt.Errorf("invalid decimal %q", s)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Amount{value: v}, nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

func (a Amount) Add(b Amount) Amount      { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount      { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Div(b Amount) Amount      { return Amount{value: a.value.Div(b.value)} }
func (a Amount) Neg() Amount              { return Amount{value: a.value.Neg()} }
func (a Amount) Cmp(b Amount) int         { return a.value.Cmp(b.value) }
func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) IsNegative() bool         { return a.value.IsNegative() }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Round returns a rounded to places fractional digits, half away from zero.
func (a Amount) Round(places int32) Amount { return Amount{value: a.value.Round(places)} }

// Inverse returns 1/a rounded to places fractional digits. It panics when a is zero.
func (a Amount) Inverse(places int32) Amount {
	return Amount{value: decimal.NewFromInt(1).DivRound(a.value, places)}
}

// StringFixed formats a with exactly places fractional digits.
func (a Amount) StringFixed(places int32) string { return a.value.StringFixed(places) }

// String returns the exact representation of a, without trailing zeros.
func (a Amount) String() string { return a.value.String() }
