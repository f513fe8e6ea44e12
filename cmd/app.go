// Package cmd implements the CLI application to read a ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/nummi"
	"github.com/etnz/nummi/cache"
	"github.com/etnz/nummi/config"
	"github.com/etnz/nummi/date"
	"github.com/etnz/nummi/ecb"
	"github.com/etnz/nummi/frankfurter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "list"

// commands in the order and groups they are registered.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&listCmd{}, "ledger"},
	{&currenciesCmd{}, "ledger"},
	{&verifyCmd{}, "ledger"},
	{&totalsCmd{}, "reports"},
	{&seriesCmd{}, "reports"},
	{&plotCmd{}, "reports"},
	{&updateCacheCmd{}, "rates"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, x := range commands {
		c.Register(x.cmd, x.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbDir      = flag.String("d", "", "Path to the ledger folder (defaults to $XDG_DATA_HOME/nummi/db)")
	cacheDir   = flag.String("cache-dir", "", "Path to the rate cache folder (defaults to $XDG_CACHE_HOME/nummi)")
	configFile = flag.String("config", "", "Path to the configuration file (defaults to $XDG_CONFIG_HOME/nummi/config.toml)")
	source     = flag.String("source", "", "Rate source, ecb or frankfurter")
	verbose    = flag.Bool("v", false, "Log debug messages")
)

// overridden in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	getenv           = os.Getenv
	// newFetcher returns the supplier of fresh rates for the source.
	newFetcher = func(source string) cache.Fetcher {
		if source == "frankfurter" {
			return &frankfurter.Fetcher{}
		}
		return &ecb.Fetcher{}
	}
	// rawMarkdown prints markdown as is, instead of rendering it for a terminal.
	rawMarkdown = false
)

// loadConfig resolves the configuration, the global flags winning over it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile, getenv)
	if err != nil {
		return cfg, err
	}
	if *dbDir != "" {
		cfg.DBDir = *dbDir
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *source != "" {
		cfg.Source = *source
	}
	return cfg, cfg.Validate()
}

// newLogger returns the application logger, on stderr.
func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	allow := level.AllowWarn()
	if *verbose {
		allow = level.AllowDebug()
	}
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

// env is what every command needs to run.
type env struct {
	cfg    config.Config
	logger log.Logger
}

func newEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: newLogger()}
	level.Debug(e.logger).Log("msg", "configuration loaded", "db", cfg.DBDir, "cache", cfg.CacheDir, "source", cfg.Source)
	return e, nil
}

// ledger returns the file system of the ledger, and the root to read.
func (e *env) ledger() (fs.FS, string) { return os.DirFS(e.cfg.DBDir), "." }

// entries returns all entries in reader order.
func (e *env) entries() ([]nummi.Entry, error) {
	fsys, root := e.ledger()
	return nummi.ReadAll(fsys, root)
}

// rates returns the conversion rates from the cache, refreshed first if stale or forced.
func (e *env) rates(ctx context.Context, force bool) (nummi.Rates, error) {
	c := cache.New(e.cfg.CacheDir, log.With(e.logger, "component", "cache"))
	c.MaxAge = e.cfg.MaxAge
	fetcher := cache.NewLoggingFetcher(log.With(e.logger, "component", "fetcher", "source", e.cfg.Source), newFetcher(e.cfg.Source))
	currencies, err := c.Get(ctx, force, fetcher)
	if err != nil {
		return nil, err
	}
	return nummi.NewRates(currencies), nil
}

// series computes the monthly series of the ledger until end.
func (e *env) series(ctx context.Context, end string) ([]nummi.Month, error) {
	on, err := date.ParseRelative(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	entries, err := e.entries()
	if err != nil {
		return nil, err
	}
	rates, err := e.rates(ctx, false)
	if err != nil {
		return nil, err
	}
	nummi.SortChronological(entries)
	return nummi.MonthlySeries(nummi.All(entries), rates, on)
}

// fail prints err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// noArgs checks that f has no positional arguments.
func noArgs(f *flag.FlagSet) bool {
	if f.NArg() != 0 {
		fmt.Fprintln(stderr, "no arguments expected")
		return false
	}
	return true
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if !rawMarkdown {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}
