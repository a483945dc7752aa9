package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// setup creates a temporary trade file with content, points the global flags
// to it and captures the command output.
func setup(t *testing.T, content string) (string, *bytes.Buffer) {
	t.Helper()
	for _, env := range []string{"LOTS_TRADES_FILE", "LOTS_CURRENCY", "LOTS_VERBOSE", "LOTS_SERVER_ADDR"} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.jsonl")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write trade file: %v", err)
		}
	}

	oldConfig, oldTrades, oldOut := *configFile, *tradesFile, out
	*configFile = filepath.Join(dir, "lots.toml")
	*tradesFile = path
	buf := &bytes.Buffer{}
	out = buf
	t.Cleanup(func() {
		*configFile, *tradesFile, out = oldConfig, oldTrades, oldOut
	})
	return path, buf
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("cannot parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

const aapl = `{"date":"2025-01-02","symbol":"AAPL","quantity":100,"price":10,"currency":"USD"}
{"date":"2025-01-03","symbol":"AAPL","quantity":-50,"price":12,"currency":"USD"}
`

const twoSymbols = aapl + `{"date":"2025-01-02","symbol":"MSFT","quantity":10,"price":400,"currency":"USD"}
{"date":"2025-02-03","symbol":"MSFT","quantity":-15,"price":410,"currency":"USD"}
`

func TestPosition_JSON(t *testing.T) {
	_, buf := setup(t, aapl)

	if status := run(t, &positionCmd{}, "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("position -json = %v, want success", status)
	}
	want := `{
  "currency": "USD",
  "realised": 100,
  "remaining": 50,
  "averageCost": 10,
  "lots": [
    {
      "date": "2025-01-02",
      "quantity": 50,
      "price": 10
    }
  ],
  "disposals": [
    {
      "date": "2025-01-03",
      "acquired": "2025-01-02",
      "quantity": 50,
      "cost": 10,
      "proceeds": 12,
      "gain": 100
    }
  ]
}
`
	if got := buf.String(); got != want {
		t.Errorf("position -json got\n%s\nwant\n%s", got, want)
	}
}

func TestPosition_Markdown(t *testing.T) {
	_, buf := setup(t, twoSymbols)

	if status := run(t, &positionCmd{}, "-s", "AAPL", "-raw"); status != subcommands.ExitSuccess {
		t.Fatalf("position -s AAPL = %v, want success", status)
	}
	if got := buf.String(); !strings.Contains(got, "# Position for AAPL") || !strings.Contains(got, "+$100.00") {
		t.Errorf("position -s AAPL -raw got\n%s", got)
	}
}

func TestPosition_SeveralSymbols(t *testing.T) {
	setup(t, twoSymbols)

	if status := run(t, &positionCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("position without -s = %v, want a usage error", status)
	}
	if status := run(t, &positionCmd{}, "-s", "AAPL", "-all"); status != subcommands.ExitUsageError {
		t.Errorf("position -s -all = %v, want a usage error", status)
	}
}

func TestPosition_All(t *testing.T) {
	_, buf := setup(t, twoSymbols)

	if status := run(t, &positionCmd{}, "-all", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("position -all -json = %v, want success", status)
	}
	var got map[string]struct {
		Realised float64 `json:"realised"`
		Oversold float64 `json:"oversold"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("position -all -json is not valid JSON: %v\n%s", err, buf)
	}
	if got["AAPL"].Realised != 100 || got["MSFT"].Realised != 100 || got["MSFT"].Oversold != 5 {
		t.Errorf("position -all -json = %+v", got)
	}
}

func TestPosition_Strict(t *testing.T) {
	setup(t, twoSymbols)

	if status := run(t, &positionCmd{}, "-s", "AAPL", "-strict", "-raw"); status != subcommands.ExitSuccess {
		t.Errorf("position -s AAPL -strict = %v, want success", status)
	}
	if status := run(t, &positionCmd{}, "-s", "MSFT", "-strict", "-raw"); status != subcommands.ExitFailure {
		t.Errorf("position -s MSFT -strict = %v, want a failure for the oversell", status)
	}
	if status := run(t, &positionCmd{}, "-all", "-strict", "-raw"); status != subcommands.ExitFailure {
		t.Errorf("position -all -strict = %v, want a failure for the oversell", status)
	}
}

func TestPosition_MissingFile(t *testing.T) {
	path, buf := setup(t, "")
	os.Remove(path)

	if status := run(t, &positionCmd{}, "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("position -json = %v, want success on a missing file", status)
	}
	if !strings.Contains(buf.String(), `"lots": []`) {
		t.Errorf("position -json got %s, want an empty position", buf)
	}
}

func TestRealised_JSON(t *testing.T) {
	_, buf := setup(t, twoSymbols)

	if status := run(t, &realisedCmd{}, "-s", "MSFT", "-period", "month", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("realised = %v, want success", status)
	}
	var got []struct {
		Period   string  `json:"period"`
		Matches  int     `json:"matches"`
		Realised float64 `json:"realised"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("realised -json is not valid JSON: %v\n%s", err, buf)
	}
	if len(got) != 1 || got[0].Period != "2025-02" || got[0].Matches != 1 || got[0].Realised != 100 {
		t.Errorf("realised -json = %+v", got)
	}

	if status := run(t, &realisedCmd{}, "-s", "MSFT", "-period", "fortnight"); status != subcommands.ExitUsageError {
		t.Errorf("realised -period fortnight = %v, want a usage error", status)
	}
}

func TestImport(t *testing.T) {
	path, buf := setup(t, aapl)
	csv := filepath.Join(t.TempDir(), "export.csv")
	content := "date,symbol,side,quantity,price\n2025-01-04,AAPL,sell,20,13\n"
	if err := os.WriteFile(csv, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// default currency from the configuration file.
	if err := os.WriteFile(*configFile, []byte("[trades]\ncurrency = \"USD\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("dry run", func(t *testing.T) {
		buf.Reset()
		if status := run(t, &importCmd{}, "-n", csv); status != subcommands.ExitSuccess {
			t.Fatalf("import -n = %v, want success", status)
		}
		got := buf.String()
		if !strings.Contains(got, `"date":"2025-01-04","symbol":"AAPL","quantity":-20,"price":13,"currency":"USD"}`) {
			t.Errorf("import -n got %s", got)
		}
	})

	t.Run("append", func(t *testing.T) {
		if status := run(t, &importCmd{}, csv); status != subcommands.ExitSuccess {
			t.Fatalf("import = %v, want success", status)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 || !strings.HasPrefix(lines[0], `{"date":"2025-01-02"`) || !strings.Contains(lines[2], `"date":"2025-01-04"`) {
			t.Errorf("trade file after import:\n%s", data)
		}
	})

	t.Run("usage", func(t *testing.T) {
		if status := run(t, &importCmd{}); status != subcommands.ExitUsageError {
			t.Errorf("import without file = %v, want a usage error", status)
		}
		if status := run(t, &importCmd{}, "-format", "xls", csv); status != subcommands.ExitUsageError {
			t.Errorf("import -format xls = %v, want a usage error", status)
		}
	})
}

func TestFmt(t *testing.T) {
	path, buf := setup(t, `{"price":"10","quantity":100, "date":"2025-01-02","symbol":"AAPL","id":"a"}

{"date":"2025-01-03","symbol":"AAPL","quantity":-50,"price":12}
`)
	if status := run(t, &fmtCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("fmt = %v, want success", status)
	}
	want := `{"id":"a","date":"2025-01-02","symbol":"AAPL","quantity":100,"price":10}
{"date":"2025-01-03","symbol":"AAPL","quantity":-50,"price":12}
`
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("fmt got\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(buf.String(), "has been formatted") {
		t.Errorf("fmt output = %q", buf)
	}
}

func TestFmt_Invalid(t *testing.T) {
	content := `{"date":"2025-01-02","symbol":"AAPL","quantity":100,"price":10,"currency":"USD"}
{"date":"2025-01-03","symbol":"AAPL","quantity":0,"price":12,  "currency":"USD"}
`
	path, _ := setup(t, content)
	if status := run(t, &fmtCmd{}); status != subcommands.ExitFailure {
		t.Errorf("fmt = %v, want a failure", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("fmt modified an invalid trade file:\n%s", got)
	}
}

func TestTopic(t *testing.T) {
	_, buf := setup(t, "")
	if status := run(t, &topicCmd{}, "-raw", "fifo"); status != subcommands.ExitSuccess {
		t.Fatalf("topic fifo = %v, want success", status)
	}
	if !strings.Contains(buf.String(), "first-in first-out") {
		t.Errorf("topic fifo got %s", buf)
	}
	if status := run(t, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want a failure", status)
	}
}

func TestCompletion(t *testing.T) {
	fs := flag.NewFlagSet("fifo", flag.ContinueOnError)
	fs.String("config", "", "")
	c := Completion(fs)

	for _, name := range []string{"position", "realised", "import", "fmt", "serve", "assist", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q command", name)
		}
	}
	if _, ok := c.Flags["config"]; !ok {
		t.Error("Completion() does not complete the global -config flag")
	}
	formats := c.Sub["import"].Flags["format"].Predict("")
	if strings.Join(formats, ",") != "csv,ibkr,json" {
		t.Errorf("import -format completes %v", formats)
	}
}

func TestRunExtension(t *testing.T) {
	path, buf := setup(t, "")
	bin := t.TempDir()
	script := "#!/bin/sh\necho \"$LOTS_TRADES_FILE $LOTS_VERBOSE $1\"\n"
	if err := os.WriteFile(filepath.Join(bin, "fifo-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"world"})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}
	if got, want := strings.TrimSpace(buf.String()), path+" false world"; got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}

	if found, _ := RunExtension("missing", nil); found {
		t.Error("RunExtension(missing) found an extension")
	}
}
