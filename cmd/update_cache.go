package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type updateCacheCmd struct{}

func (*updateCacheCmd) Name() string { return "update-cache" }
func (*updateCacheCmd) Synopsis() string {
	return "download the latest currency rates into the cache"
}
func (*updateCacheCmd) Usage() string              { return "nummi update-cache\n" }
func (c *updateCacheCmd) SetFlags(f *flag.FlagSet) {}
func (c *updateCacheCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !noArgs(f) {
		return subcommands.ExitUsageError
	}
	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	rates, err := e.rates(ctx, true)
	if err != nil {
		return fail(err)
	}
	// eur is always present and never cached.
	fmt.Fprintf(stdout, "%d currency rates cached in %s\n", len(rates)-1, e.cfg.CachePath())
	return subcommands.ExitSuccess
}
