package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lots"
	"github.com/etnz/lots/renderer"
	"github.com/google/subcommands"
)

type positionCmd struct {
	symbol string
	all    bool
	asJSON bool
	strict bool
	raw    bool
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "computes the FIFO position of an instrument" }
func (*positionCmd) Usage() string {
	return `fifo position [-s <symbol>] [-all] [-json] [-strict] [-raw]

  Replays the trade file, in order, and displays the resulting position:
  remaining quantity, average cost of the open lots, realised gain, open lots
  and disposals.

  If the trade file has several symbols, use -s to select one or -all to get
  a summary of all of them.

`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the instrument")
	f.BoolVar(&c.all, "all", false, "Compute the position of every symbol")
	f.BoolVar(&c.asJSON, "json", false, "Print the position as JSON")
	f.BoolVar(&c.strict, "strict", false, "Fail on invalid trades or sells without open lots")
	f.BoolVar(&c.raw, "raw", false, "Print the raw markdown")
}

func (c *positionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && c.symbol != "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -all are mutually exclusive")
		return subcommands.ExitUsageError
	}
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
	debugf(cfg, "loaded %d trades from %s", len(trades), cfg.Trades.File)

	if c.all {
		positions, symbols, err := lots.FIFOBySymbol(ctx, trades)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing positions: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.strict {
			groups, _ := lots.SplitBySymbol(trades)
			for _, s := range symbols {
				if err := check(groups[s]); err != nil {
					fmt.Fprintf(os.Stderr, "Error: invalid trades for %q: %v\n", s, err)
					return subcommands.ExitFailure
				}
			}
		}
		if c.asJSON {
			if err := printJSON(positions); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing positions: %v\n", err)
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		}
		printMarkdown(renderer.PositionsMarkdown(symbols, positions), c.raw)
		return subcommands.ExitSuccess
	}

	selected, symbol, err := lots.SelectSymbol(trades, c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.strict {
		if err := check(selected); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid trades: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	pos := lots.FIFO(selected)
	if c.asJSON {
		if err := printJSON(pos); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing position: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PositionMarkdown(symbol, pos), c.raw)
	return subcommands.ExitSuccess
}

// check runs every check on the trades of a single instrument.
func check(trades []lots.Trade) error {
	return errors.Join(lots.Validate(trades), lots.CheckOversell(trades))
}
