// Package renderer formats ledger aggregates as markdown reports.
package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/nummi"
	md "github.com/nao1215/markdown"
)

// Display formats v in the currency code, with the currency's own symbol and fraction digits.
// Codes unknown to ISO 4217 are displayed with 2 fractional digits and the code.
func Display(v nummi.Amount, code nummi.Code) string {
	cur := money.GetCurrency(strings.ToUpper(string(code)))
	if cur == nil {
		return fmt.Sprintf("%s %s", v.StringFixed(2), code)
	}
	minor := v.Decimal().Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// TotalsMarkdown reports the inflow, outflow and net of every currency.
// If converted is not nil, it is reported as the EUR total of all currencies.
func TotalsMarkdown(totals map[nummi.Code]nummi.Total, converted *nummi.Total) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Totals")
	if len(totals) == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}

	table := md.TableSet{Header: []string{"Currency", "In", "Out", "Net"}}
	for _, code := range slices.Sorted(maps.Keys(totals)) {
		t := totals[code]
		table.Rows = append(table.Rows, []string{
			string(code),
			Display(t.Pos, code),
			Display(t.Neg, code),
			Display(t.Net(), code),
		})
	}
	doc.Table(table)

	if converted != nil {
		doc.H2("Converted to EUR")
		doc.Table(md.TableSet{
			Header: []string{"In", "Out", "Net"},
			Rows: [][]string{{
				Display(converted.Pos, nummi.EUR),
				Display(converted.Neg, nummi.EUR),
				Display(converted.Net(), nummi.EUR),
			}},
		})
	}
	return doc.String()
}

// SeriesMarkdown reports one line per month, in EUR.
func SeriesMarkdown(rows []nummi.Month) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Series")
	if len(rows) == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}
	table := md.TableSet{Header: []string{"Month", "In", "Out", "Net", "Cumulative"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d-%02d", r.Year, int(r.Month)),
			Display(r.In, nummi.EUR),
			Display(r.Out, nummi.EUR),
			Display(r.Net, nummi.EUR),
			Display(r.Sum, nummi.EUR),
		})
	}
	doc.Table(table)
	return doc.String()
}
