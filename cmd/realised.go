package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/lots"
	"github.com/etnz/lots/date"
	"github.com/etnz/lots/renderer"
	"github.com/google/subcommands"
)

type realisedCmd struct {
	symbol string
	period string
	asJSON bool
	raw    bool
}

func (*realisedCmd) Name() string     { return "realised" }
func (*realisedCmd) Synopsis() string { return "reports realised gains per period" }
func (*realisedCmd) Usage() string {
	return `fifo realised [-s <symbol>] [-period <period>] [-json] [-raw]

  Reports the gains realised by the sells of an instrument, grouped by the
  period of the sell date, from the first to the last sell. Periods without
  sells are listed with a zero gain.

  Trade dates must be dates (see 'fifo topic periods').

`
}

func (c *realisedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the instrument")
	f.StringVar(&c.period, "period", "monthly", "Period of each line: "+strings.Join(date.Periods(), ", "))
	f.BoolVar(&c.asJSON, "json", false, "Print the periods as JSON")
	f.BoolVar(&c.raw, "raw", false, "Print the raw markdown")
}

func (c *realisedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	selected, symbol, err := lots.SelectSymbol(trades, c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows, err := lots.RealisedByPeriod(lots.FIFO(selected), period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing realised gains: %v\n", err)
		return subcommands.ExitFailure
	}
	debugf(cfg, "%d %s periods for %d trades", len(rows), period, len(selected))

	if c.asJSON {
		if rows == nil {
			rows = []lots.PeriodRealised{}
		}
		if err := printJSON(rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing realised gains: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RealisedMarkdown(symbol, period, rows), c.raw)
	return subcommands.ExitSuccess
}
