package nummi

import (
	"cmp"
	"fmt"
	"slices"
)

// Code is a 3 letters, lower case, currency code like "usd".
type Code string

// EUR is the base currency every rate converts to.
const EUR Code = "eur"

// ParseCode validates that s is made of exactly 3 lower case ASCII letters.
func ParseCode(s string) (Code, error) {
	if len(s) != 3 {
		return "", fmt.Errorf("invalid currency code %q: want 3 letters", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", fmt.Errorf("invalid currency code %q: want lower case letters", s)
		}
	}
	return Code(s), nil
}

// Currency is a currency with its conversion rate: 1 unit of Code is worth ToEUR euros.
type Currency struct {
	Code  Code
	ToEUR Amount
}

func (c Currency) String() string { return fmt.Sprintf("%s %s", c.Code, c.ToEUR) }

// CompareCurrencies orders currencies by code, then by rate.
func CompareCurrencies(a, b Currency) int {
	if c := cmp.Compare(a.Code, b.Code); c != 0 {
		return c
	}
	return a.ToEUR.Cmp(b.ToEUR)
}

// SortCurrencies sorts cs in the CompareCurrencies order.
func SortCurrencies(cs []Currency) { slices.SortFunc(cs, CompareCurrencies) }

// Rates is a conversion table from currency code to its value in EUR.
type Rates map[Code]Amount

// NewRates builds the conversion table for currencies. EUR is always present with a rate of 1.
func NewRates(currencies []Currency) Rates {
	r := make(Rates, len(currencies)+1)
	for _, c := range currencies {
		r[c.Code] = c.ToEUR
	}
	r[EUR] = A(1)
	return r
}

// UnknownCurrencyError is returned when converting a currency missing from the conversion table.
type UnknownCurrencyError struct {
	Code Code
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no conversion rate for currency %q", string(e.Code))
}

// Rate returns the EUR rate of code.
func (r Rates) Rate(code Code) (Amount, error) {
	rate, ok := r[code]
	if !ok {
		return Amount{}, &UnknownCurrencyError{Code: code}
	}
	return rate, nil
}

// Convert returns v, expressed in code, converted to EUR.
func (r Rates) Convert(v Amount, code Code) (Amount, error) {
	rate, err := r.Rate(code)
	if err != nil {
		return Amount{}, err
	}
	return v.Mul(rate), nil
}
