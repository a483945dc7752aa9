package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables given to extensions, they are the ones read by the
// configuration.
const (
	EnvTradesFile = "LOTS_TRADES_FILE"
	EnvCurrency   = "LOTS_CURRENCY"
	EnvVerbose    = "LOTS_VERBOSE"
)

// RunExtension attempts to find and execute an external fifo-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fifo-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *verbose {
			log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	// Pass the resolved configuration as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvTradesFile+"="+cfg.Trades.File)
	cmd.Env = append(cmd.Env, EnvCurrency+"="+cfg.Trades.Currency)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(cfg.Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
