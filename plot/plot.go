// Package plot renders a monthly series as a PNG chart using gnuplot.
package plot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/etnz/nummi"
)

// Program is the gnuplot executable, looked up in PATH.
var Program = "gnuplot"

// Options control the chart image.
type Options struct {
	Width, Height int // in pixels
}

// DefaultOptions is a wide chart, suitable for several years of months.
var DefaultOptions = Options{Width: 6144, Height: 1080}

// chart draws in and out as boxes, with net and the cumulative sum as lines.
// The sum uses the second y axis.
const chart = `set grid
set xtics 3 * 30 * 24 * 60 * 60
set ytics nomirror
set y2tics
set xdata time
set format x "%Y-%m"
set timefmt "%Y-%m"
w = 15 * 24 * 60 * 60
o(x) = (x + 200 * (x < 0 ? -1 : 1))
plot \
	$d using 1:2:(w)     with boxes  lc "blue"        title "in", \
	$d using 1:(o($2)):2 with labels tc "blue"        notitle, \
	$d using 1:3:(w)     with boxes  lc "red"         title "out", \
	$d using 1:(o($3)):3 with labels tc "red"         notitle, \
	$d using 1:4         with lines  lc "dark-yellow" title "net", \
	$d using 1:4:4       with labels tc "dark-yellow" notitle, \
	$d using 1:5         with lines  lc "dark-green"  title "sum" axes x1y2, \
	$d using 1:5:5       with labels tc "dark-green"  notitle axes x1y2
`

// WriteData writes rows in the gnuplot data layout, one month per line.
func WriteData(w io.Writer, rows []nummi.Month) error { return nummi.WriteSeries(w, rows) }

// Script writes the complete gnuplot program drawing rows: the data inlined
// in a "$d" block, followed by the chart commands.
func Script(w io.Writer, rows []nummi.Month, opts Options) error {
	var buf bytes.Buffer
	buf.WriteString("$d <<EOD\n")
	if err := WriteData(&buf, rows); err != nil {
		return err
	}
	buf.WriteString("EOD\n")
	fmt.Fprintf(&buf, "set term png size %d,%d\n", opts.Width, opts.Height)
	buf.WriteString(chart)
	_, err := w.Write(buf.Bytes())
	return err
}

// Render runs gnuplot on rows and writes the PNG image to out.
func Render(ctx context.Context, rows []nummi.Month, out io.Writer, opts Options) error {
	var script bytes.Buffer
	if err := Script(&script, rows, opts); err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, Program)
	cmd.Stdin = &script
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", Program, err, msg)
		}
		return fmt.Errorf("%s failed: %w", Program, err)
	}
	return nil
}
