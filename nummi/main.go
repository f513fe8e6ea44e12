package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/nummi/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell to complete the command line.
	cmd.Completion(flag.CommandLine).Complete(name)

	flag.Parse()
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], cmd.DefaultCommand))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
