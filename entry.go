package nummi

import (
	"fmt"
	"strings"

	"github.com/etnz/nummi/date"
)

// Entry is one ledger record.
//
// In a ledger file it is written on a single line:
//
//	2020-01-31 -12.50eur f lunch with the team
//
// That is: the date, the signed amount immediately followed by the currency code,
// a single byte tag, and a free text that runs to the end of the line.
type Entry struct {
	Date     date.Date
	Value    Amount
	Currency Code
	Tag      byte
	Text     string
}

// ParseEntry parses a ledger line into an Entry.
// Errors are always of type *ParseError.
func ParseEntry(line string) (Entry, error) {
	dateField, rest, _ := strings.Cut(line, " ")
	if dateField == "" {
		return Entry{}, &ParseError{Kind: MissingDate}
	}
	amountField, rest, _ := strings.Cut(rest, " ")
	if amountField == "" {
		return Entry{}, &ParseError{Kind: MissingAmount}
	}
	// at least a digit and a currency code.
	if len(amountField) < 4 {
		return Entry{}, &ParseError{Kind: InvalidAmount, Value: amountField}
	}
	split := len(amountField) - 3
	code, err := ParseCode(amountField[split:])
	if err != nil {
		return Entry{}, &ParseError{Kind: InvalidAmount, Value: amountField, Err: err}
	}
	tagField, text, _ := strings.Cut(rest, " ")
	if tagField == "" {
		return Entry{}, &ParseError{Kind: MissingTag}
	}
	if len(tagField) != 1 {
		return Entry{}, &ParseError{Kind: InvalidTag, Value: tagField}
	}

	on, err := date.Parse(dateField)
	if err != nil {
		return Entry{}, &ParseError{Kind: InvalidDate, Value: dateField, Err: err}
	}
	value, err := ParseAmount(amountField[:split])
	if err != nil {
		return Entry{}, &ParseError{Kind: InvalidDecimal, Value: amountField[:split], Err: err}
	}

	return Entry{
		Date:     on,
		Value:    value,
		Currency: code,
		Tag:      tagField[0],
		Text:     text,
	}, nil
}

// String returns the ledger line for e, the amount is written with 2 fractional digits.
func (e Entry) String() string {
	return fmt.Sprintf("%s %s%s %c %s", e.Date, e.Value.StringFixed(2), e.Currency, e.Tag, e.Text)
}

// Equal reports whether e and x hold the same values.
func (e Entry) Equal(x Entry) bool {
	return e.Date == x.Date &&
		e.Value.Equal(x.Value) &&
		e.Currency == x.Currency &&
		e.Tag == x.Tag &&
		e.Text == x.Text
}
