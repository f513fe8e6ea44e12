package nummi

import (
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/etnz/nummi/date"
)

// Month aggregates one calendar month of entries, converted to EUR.
type Month struct {
	Year  int
	Month time.Month
	In    Amount // sum of the non negative entries.
	Out   Amount // sum of the negative entries.
	Net   Amount // In + Out.
	Sum   Amount // cumulative Net since the first month.
}

// String formats the month as "2020-01 900.00 -300.00 600.00 600.00".
func (m Month) String() string {
	return fmt.Sprintf("%d-%02d %s %s %s %s",
		m.Year, int(m.Month),
		m.In.StringFixed(2), m.Out.StringFixed(2), m.Net.StringFixed(2), m.Sum.StringFixed(2))
}

// MonthlySeries computes one Month per calendar month, from the month of the
// first entry, through the month of end. Months without entries are included.
//
// entries must be in chronological order, entries dated after end's month are
// not accounted for. Any error from the sequence, a missing rate, or an entry
// out of order (ErrUnordered) aborts the computation and no Month is returned.
// An empty sequence returns an empty series.
func MonthlySeries(entries iter.Seq2[Entry, error], rates Rates, end date.Date) ([]Month, error) {
	next, stop := iter.Pull2(entries)
	defer stop()

	e, err, ok := next()
	if !ok {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []Month
	var sum Amount
	last := e.Date
	for month := range date.Months(e.Date, end) {
		var group []Entry
		for ok && e.Date.SameMonth(month) {
			group = append(group, e)
			last = e.Date
			e, err, ok = next()
			if ok && err != nil {
				return nil, err
			}
		}
		if ok && e.Date.Before(month) {
			return nil, fmt.Errorf("%w: %s found after %s", ErrUnordered, e.Date, last)
		}

		t, err := TotalWithConversion(group, rates)
		if err != nil {
			return nil, fmt.Errorf("%d-%02d: %w", month.Year(), int(month.Month()), err)
		}
		net := t.Net()
		sum = sum.Add(net)
		rows = append(rows, Month{
			Year:  month.Year(),
			Month: month.Month(),
			In:    t.Pos,
			Out:   t.Neg,
			Net:   net,
			Sum:   sum,
		})
	}

	// entries past the end are not accounted for, but the ledger must still be valid.
	for ok {
		if _, err, ok = next(); ok && err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// WriteSeries writes one line per Month, in the Month.String format.
func WriteSeries(w io.Writer, rows []Month) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\n", r); err != nil {
			return err
		}
	}
	return nil
}
