package cmd

import (
	"context"
	"flag"

	"github.com/etnz/nummi"
	"github.com/etnz/nummi/renderer"
	"github.com/google/subcommands"
)

type totalsCmd struct {
	eur bool
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "display inflows and outflows per currency" }
func (*totalsCmd) Usage() string {
	return `nummi totals [-eur]

  Displays the sum of positive and negative amounts of every currency of the
  ledger. With -eur, also displays the total of all currencies converted to EUR,
  refreshing the rate cache first if it is stale.
`
}

func (c *totalsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.eur, "eur", false, "Also display the total converted to EUR.")
}

func (c *totalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !noArgs(f) {
		return subcommands.ExitUsageError
	}
	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	entries, err := e.entries()
	if err != nil {
		return fail(err)
	}

	var converted *nummi.Total
	if c.eur {
		rates, err := e.rates(ctx, false)
		if err != nil {
			return fail(err)
		}
		total, err := nummi.TotalWithConversion(entries, rates)
		if err != nil {
			return fail(err)
		}
		converted = &total
	}
	printMarkdown(renderer.TotalsMarkdown(nummi.Totals(entries), converted))
	return subcommands.ExitSuccess
}
