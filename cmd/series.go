package cmd

import (
	"context"
	"flag"

	"github.com/etnz/nummi"
	"github.com/etnz/nummi/renderer"
	"github.com/google/subcommands"
)

type seriesCmd struct {
	end string
	md  bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display the monthly inflows and outflows in EUR" }
func (*seriesCmd) Usage() string {
	return `nummi series [-end <date>] [-md]

  Displays one line per month, from the month of the oldest entry to the month
  of the end date: month, inflow, outflow, net and cumulative sum, in EUR.
  Months without entries are zero lines.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.end, "end", "0d", "The last month of the series, as a date or relative to today (e.g. -1m).")
	f.BoolVar(&c.md, "md", false, "Display a markdown table instead of plain lines.")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !noArgs(f) {
		return subcommands.ExitUsageError
	}
	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	rows, err := e.series(ctx, c.end)
	if err != nil {
		return fail(err)
	}
	if c.md {
		printMarkdown(renderer.SeriesMarkdown(rows))
		return subcommands.ExitSuccess
	}
	if err := nummi.WriteSeries(stdout, rows); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
