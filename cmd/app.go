// Package cmd implements the fifo command line application.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/lots"
	"github.com/etnz/lots/config"
	"github.com/google/subcommands"
)

// Commands returns the commands of the application, by group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"positions": {&positionCmd{}, &realisedCmd{}},
		"trades":    {&importCmd{}, &fmtCmd{}},
		"services":  {&serveCmd{}, &AssistCmd{}},
		"help":      {&topicCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "lots.toml", "Path to the TOML configuration file")
var tradesFile = flag.String("trades", "", "Path to the trade file (JSONL format), overrides the configuration")
var verbose = flag.Bool("v", false, "Print more details about what is done")

// out is where commands write their results.
var out io.Writer = os.Stdout

// loadConfig returns the configuration, with the global flags applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *tradesFile != "" {
		cfg.Trades.File = *tradesFile
	}
	if *verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// debugf logs only in verbose mode.
func debugf(cfg *config.Config, format string, args ...any) {
	if cfg.Verbose {
		log.Printf(format, args...)
	}
}

// DecodeTrades reads the trade file at path. A missing file has no trades.
func DecodeTrades(path string) ([]lots.Trade, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, trade file %q does not exist, using no trades instead", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open trade file %q: %w", path, err)
	}
	defer f.Close()

	trades, err := lots.DecodeTrades(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode trade file %q: %w", path, err)
	}
	return trades, nil
}

// EncodeTrades replaces the content of the trade file at path.
func EncodeTrades(path string, trades []lots.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening trade file %q for writing: %w", path, err)
	}
	if err := lots.EncodeTrades(f, trades); err != nil {
		f.Close()
		return fmt.Errorf("error writing trade file %q: %w", path, err)
	}
	return f.Close()
}

// AppendTrades appends trades at the end of the trade file at path, creating
// it if needed.
func AppendTrades(path string, trades []lots.Trade) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening trade file %q: %w", path, err)
	}
	if err := lots.EncodeTrades(f, trades); err != nil {
		f.Close()
		return fmt.Errorf("error writing to trade file %q: %w", path, err)
	}
	return f.Close()
}

// printJSON writes v as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

// printMarkdown writes md, rendered for the terminal unless raw is set.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, renderMarkdown(md))
}

// renderMarkdown renders md for the terminal, or returns it unchanged if it
// cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	s, err := r.Render(md)
	if err != nil {
		return md
	}
	return s
}
