// Package date provides a calendar date with day granularity, as used by
// ledger entries, and helpers to walk it month by month.
package date

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Format is the ISO-8601 layout dates are read from and written to ledger files.
const Format = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in its ISO format.
func (d Date) String() string { return d.time().Format(Format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
func (d Date) AddMonth(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return New(d.y, d.m, 1) }

// SameMonth reports whether d and x fall in the same calendar month.
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// Months returns the first day of every month from the month of from, through
// the month of to, inclusive. It is empty when to is before from's month.
func Months(from, to Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		last := to.StartOfMonth()
		for m := from.StartOfMonth(); !m.After(last); m = m.AddMonth(1) {
			if !yield(m) {
				return
			}
		}
	}
}

// Parse parses a Date in the strict "YYYY-MM-DD" format.
func Parse(str string) (Date, error) {
	on, err := time.Parse(Format, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// ParseRelative parses a user supplied date. On top of the ISO format it
// accepts "0d" for today, and offsets from today like "-1m", "+2w" or "-3d".
func ParseRelative(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" {
		return Today(), nil
	}
	match := relativeDateRE.FindStringSubmatch(str)
	if match == nil {
		return Parse(str)
	}
	num, err := strconv.Atoi(match[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
	}
	if match[1] == "-" {
		num = -num
	}
	today := Today()
	switch match[3] {
	case "d":
		return today.Add(num), nil
	case "w":
		return today.Add(num * 7), nil
	case "m":
		return today.AddMonth(num), nil
	default: // "y"
		return New(today.Year()+num, today.Month(), today.Day()), nil
	}
}
