package nummi

import (
	"slices"
	"testing"
)

func TestParseAmount(t *testing.T) {
	valid := []string{"0", "1", "-1", "0.00", "12.5", "-1234.5678", "007"}
	for _, s := range valid {
		if _, err := ParseAmount(s); err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", s, err)
		}
	}
	invalid := []string{"", "-", ".5", "1.", "+1", "1e3", "1,5", " 1", "NaN", "--1"}
	for _, s := range invalid {
		if _, err := ParseAmount(s); err == nil {
			t.Errorf("ParseAmount(%q) = nil error want an error", s)
		}
	}
}

func TestAmountArithmetic(t *testing.T) {
	a, b := MustParseAmount("10.25"), MustParseAmount("-0.5")
	testCases := []struct {
		name string
		got  Amount
		want string
	}{
		{"add", a.Add(b), "9.75"},
		{"sub", a.Sub(b), "10.75"},
		{"mul", a.Mul(b), "-5.125"},
		{"div", a.Div(b), "-20.5"},
		{"neg", b.Neg(), "0.5"},
		{"round", MustParseAmount("2.345").Round(2), "2.35"},
		{"inverse", MustParseAmount("1.25").Inverse(4), "0.8"},
	}
	for _, tc := range testCases {
		if !tc.got.Equal(MustParseAmount(tc.want)) {
			t.Errorf("%s = %v want %v", tc.name, tc.got, tc.want)
		}
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Errorf("Cmp() is not consistent for %v and %v", a, b)
	}
}

func TestAmountStringFixed(t *testing.T) {
	testCases := []struct {
		in     string
		places int32
		want   string
	}{
		{"1", 2, "1.00"},
		{"-300", 2, "-300.00"},
		{"0.125", 2, "0.13"},
		{"1.23456", 4, "1.2346"},
		{"5", 0, "5"},
	}
	for _, tc := range testCases {
		if got := MustParseAmount(tc.in).StringFixed(tc.places); got != tc.want {
			t.Errorf("StringFixed(%s, %d) = %q want %q", tc.in, tc.places, got, tc.want)
		}
	}
	var zero Amount
	if got := zero.StringFixed(2); got != "0.00" {
		t.Errorf("zero.StringFixed(2) = %q want 0.00", got)
	}
}

func TestParseCode(t *testing.T) {
	for _, s := range []string{"eur", "usd", "xau"} {
		if _, err := ParseCode(s); err != nil {
			t.Errorf("ParseCode(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "eu", "euro", "EUR", "e1r"} {
		if _, err := ParseCode(s); err == nil {
			t.Errorf("ParseCode(%q) = nil error want an error", s)
		}
	}
}

func TestSortCurrencies(t *testing.T) {
	cs := []Currency{
		{Code: "usd", ToEUR: MustParseAmount("0.9")},
		{Code: "chf", ToEUR: MustParseAmount("1.1")},
		{Code: "usd", ToEUR: MustParseAmount("0.8")},
	}
	SortCurrencies(cs)
	var got []string
	for _, c := range cs {
		got = append(got, c.String())
	}
	if want := []string{"chf 1.1", "usd 0.8", "usd 0.9"}; !slices.Equal(got, want) {
		t.Errorf("SortCurrencies() = %v want %v", got, want)
	}
}

func TestRates(t *testing.T) {
	r := NewRates([]Currency{{Code: "usd", ToEUR: MustParseAmount("0.9")}})
	if got, err := r.Rate(EUR); err != nil || !got.Equal(A(1)) {
		t.Errorf("Rate(eur) = %v, %v want 1", got, err)
	}
	got, err := r.Convert(A(10), "usd")
	if err != nil || !got.Equal(A(9)) {
		t.Errorf("Convert(10 usd) = %v, %v want 9", got, err)
	}
	if _, err := r.Convert(A(10), "gbp"); err == nil {
		t.Error("Convert(gbp) = nil error want an error")
	}
}
