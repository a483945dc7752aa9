// Command fifo computes the cost basis of positions from a trade file, using
// the first-in first-out method.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/lots/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])

	// Shell completion, when invoked by the shell (COMP_LINE set).
	cmd.Completion(flag.CommandLine).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown commands are looked up as fifo-<command> extensions.
	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}
