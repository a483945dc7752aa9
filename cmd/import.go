package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/etnz/lots"
	"github.com/google/subcommands"
)

// importers by format name.
var importers = map[string]func(r io.Reader, path string) ([]lots.Trade, error){
	"csv":  func(r io.Reader, _ string) ([]lots.Trade, error) { return lots.ImportCSV(r) },
	"ibkr": func(r io.Reader, _ string) ([]lots.Trade, error) { return lots.ImportIBKR(r) },
	"json": lots.ImportJSON,
}

type importCmd struct {
	format string
	path   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "imports trades from a broker or spreadsheet export" }
func (*importCmd) Usage() string {
	return `fifo import [-format csv|ibkr|json] [-path <jsonpath>] [-n] <file>

  Reads the trades of <file> and appends them, in the file order, to the
  trade file. Trades without ID get a new one. Prices without currency are
  given the configured default currency.

  -format csv   a CSV file with a header line (date, quantity, price, and
                optionally symbol, side, currency, id).
  -format ibkr  an Interactive Brokers activity statement.
  -format json  any JSON document, -path selects the array of trades.

  With -n, the trades are printed instead.

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Format of the file: csv, ibkr or json")
	f.StringVar(&c.path, "path", "$", "JSONPath of the trades in a json file")
	f.BoolVar(&c.dryRun, "n", false, "Print the imported trades instead of appending them")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import expects exactly one file")
		return subcommands.ExitUsageError
	}
	importer, ok := importers[strings.ToLower(c.format)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	name := f.Arg(0)
	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	trades, err := importer(file, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	if cfg.Trades.Currency != "" {
		trades = lots.WithCurrency(trades, cfg.Trades.Currency)
	}

	groups, symbols := lots.SplitBySymbol(trades)
	for _, s := range symbols {
		if err := lots.Validate(groups[s]); err != nil {
			log.Printf("warning, imported trades for %q are not valid: %v", s, err)
		}
	}

	if c.dryRun {
		if err := lots.EncodeTrades(out, trades); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing trades: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := AppendTrades(cfg.Trades.File, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "Imported %d trades into %s\n", len(trades), cfg.Trades.File)
	return subcommands.ExitSuccess
}
