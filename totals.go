package nummi

import (
	"maps"
	"slices"
)

// Total accumulates inflows and outflows separately.
// Pos is the sum of all non negative values, Neg the sum of all negative ones.
type Total struct {
	Pos, Neg Amount
}

// Add accounts for v in the total.
func (t Total) Add(v Amount) Total {
	if v.IsNegative() {
		t.Neg = t.Neg.Add(v)
	} else {
		t.Pos = t.Pos.Add(v)
	}
	return t
}

// Net returns Pos + Neg.
func (t Total) Net() Amount { return t.Pos.Add(t.Neg) }

// Equal reports whether both sums are equal.
func (t Total) Equal(x Total) bool { return t.Pos.Equal(x.Pos) && t.Neg.Equal(x.Neg) }

// UniqueCurrencies returns the distinct currency codes used by entries, sorted.
func UniqueCurrencies(entries []Entry) []Code {
	set := make(map[Code]struct{})
	for _, e := range entries {
		set[e.Currency] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Totals returns the Total of entries for each currency.
func Totals(entries []Entry) map[Code]Total {
	totals := make(map[Code]Total)
	for _, e := range entries {
		totals[e.Currency] = totals[e.Currency].Add(e.Value)
	}
	return totals
}

// TotalWithConversion returns the Total of entries converted to EUR.
//
// Each currency's positive and negative sums are converted with their rate
// before being summed across currencies. It fails with an
// *UnknownCurrencyError if a currency has no rate.
func TotalWithConversion(entries []Entry, rates Rates) (Total, error) {
	totals := Totals(entries)
	var sum Total
	for _, code := range slices.Sorted(maps.Keys(totals)) {
		rate, err := rates.Rate(code)
		if err != nil {
			return Total{}, err
		}
		t := totals[code]
		sum.Pos = sum.Pos.Add(t.Pos.Mul(rate))
		sum.Neg = sum.Neg.Add(t.Neg.Mul(rate))
	}
	return sum, nil
}
