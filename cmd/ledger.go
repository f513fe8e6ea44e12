package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/nummi"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print every entry of the ledger" }
func (*listCmd) Usage() string {
	return `nummi list:
  prints every entry of the ledger in its canonical form, newest file first.
  This is the default command.
`
}
func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, entry := range entries {
		fmt.Fprintln(stdout, entry)
	}
	return subcommands.ExitSuccess
}

type currenciesCmd struct{}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "print the currencies used in the ledger" }
func (*currenciesCmd) Usage() string {
	return `nummi currencies:
  prints the distinct currency codes of the ledger, one per line.
`
}
func (*currenciesCmd) SetFlags(f *flag.FlagSet) {}

func (*currenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, code := range nummi.UniqueCurrencies(entries) {
		fmt.Fprintln(stdout, code)
	}
	return subcommands.ExitSuccess
}

type verifyCmd struct{}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check that every ledger line is valid" }
func (*verifyCmd) Usage() string {
	return `nummi verify:
  reads the whole ledger and reports the first invalid line, as path:line.
  Exits with status 1 if the ledger is invalid.
`
}
func (*verifyCmd) SetFlags(f *flag.FlagSet) {}

func (*verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !noArgs(f) {
		return subcommands.ExitUsageError
	}
	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	fsys, root := e.ledger()
	if err := nummi.Validate(fsys, root); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
