package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lots"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the trade file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fifo fmt

  Validates and formats the trade file. This command reads all trades,
  validates them symbol by symbol, and writes them back in a canonical JSONL
  format. The order of the trades is kept: it is the order they are
  processed in.

  The file is left untouched if any trade is invalid.

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	trades, err := DecodeTrades(cfg.Trades.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trades: %v\n", err)
		return subcommands.ExitFailure
	}

	var errs []error
	groups, symbols := lots.SplitBySymbol(trades)
	for _, s := range symbols {
		if err := lots.Validate(groups[s]); err != nil {
			errs = append(errs, fmt.Errorf("symbol %q: %w", s, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid trades:\n%v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeTrades(cfg.Trades.File, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding trades: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(out, "Trade file '%s' has been formatted.\n", cfg.Trades.File)
	return subcommands.ExitSuccess
}
