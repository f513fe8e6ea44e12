package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/nummi/plot"
	"github.com/google/subcommands"
)

type plotCmd struct {
	end    string
	out    string
	width  int
	height int
	script bool
}

func (*plotCmd) Name() string     { return "plot" }
func (*plotCmd) Synopsis() string { return "draw the monthly series as a PNG chart" }
func (*plotCmd) Usage() string {
	return `nummi plot [-end <date>] [-o <file>] [-width <px>] [-height <px>] [-script]

  Draws the monthly series with gnuplot: inflow and outflow as boxes, net and
  the cumulative sum as lines. With -script, prints the gnuplot script instead
  of running it.
`
}

func (c *plotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.end, "end", "0d", "The last month of the chart, as a date or relative to today (e.g. -1m).")
	f.StringVar(&c.out, "o", "series.png", "The PNG file to write, '-' for stdout.")
	f.IntVar(&c.width, "width", plot.DefaultOptions.Width, "The image width in pixels.")
	f.IntVar(&c.height, "height", plot.DefaultOptions.Height, "The image height in pixels.")
	f.BoolVar(&c.script, "script", false, "Print the gnuplot script instead of running it.")
}

func (c *plotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !noArgs(f) {
		return subcommands.ExitUsageError
	}
	if c.width <= 0 || c.height <= 0 {
		fmt.Fprintf(stderr, "invalid image size %dx%d\n", c.width, c.height)
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
	opts := plot.Options{Width: c.width, Height: c.height}

	if c.script {
		if err := plot.Script(stdout, rows, opts); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	if c.out == "-" {
		if err := plot.Render(ctx, rows, stdout, opts); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	file, err := os.Create(c.out)
	if err != nil {
		return fail(err)
	}
	err = plot.Render(ctx, rows, file, opts)
	err = errors.Join(err, file.Close())
	if err != nil {
		os.Remove(c.out)
		return fail(err)
	}
	fmt.Fprintf(stdout, "chart written to %s\n", c.out)
	return subcommands.ExitSuccess
}
