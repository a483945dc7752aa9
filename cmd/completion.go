package cmd

import (
	"flag"

	"github.com/etnz/lots/date"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes flag values by flag name.
var flagPredictors = map[string]complete.Predictor{
	"config": predict.Files("*.toml"),
	"trades": predict.Files("*.jsonl"),
	"format": predict.Set{"csv", "ibkr", "json"},
	"period": predict.Set(date.Periods()),
}

// argPredictors completes positional arguments by command name.
var argPredictors = map[string]complete.Predictor{
	"import": predict.Files("*"),
	"topic":  predict.Set{"readme", "fifo", "trades", "import", "periods", "config", "server", "assist"},
}

// Completion returns the shell completion of the application, including the
// global flags of fs.
func Completion(fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(fs),
	}
	for _, cmds := range Commands() {
		for _, c := range cmds {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{
				Flags: predictFlags(f),
				Args:  argPredictors[c.Name()],
			}
		}
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
