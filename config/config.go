// Package config holds the settings of the fifo command line and server.
//
// Settings come from, in order of precedence: command line flags, LOTS_*
// environment variables (a .env file is loaded if present), a TOML file and
// the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Trades  TradesConfig `toml:"trades"`
	Server  ServerConfig `toml:"server"`
	Assist  AssistConfig `toml:"assist"`
	Verbose bool         `toml:"verbose"`
}

// TradesConfig locates the trade file.
type TradesConfig struct {
	File string `toml:"file"`
	// Currency is given to imported trades that do not have one.
	Currency string `toml:"currency"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  duration `toml:"read_timeout"`
	WriteTimeout duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// AssistConfig configures the assist command.
type AssistConfig struct {
	Model string `toml:"model"`
}

// duration wraps time.Duration so it can be written as "10s" in TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Trades: TradesConfig{
			File: "trades.jsonl",
		},
		Server: ServerConfig{
			Addr:         ":8081",
			ReadTimeout:  duration{10 * time.Second},
			WriteTimeout: duration{10 * time.Second},
			MaxBodyBytes: 8 << 20,
		},
		Assist: AssistConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.Trades.File == "" {
		errs = append(errs, errors.New("trades: file must not be empty"))
	}
	if cur := c.Trades.Currency; cur != "" && (len(cur) != 3 || strings.ToUpper(cur) != cur) {
		errs = append(errs, fmt.Errorf("trades: currency %q is not an upper case ISO 4217 code", cur))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server: addr must not be empty"))
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		errs = append(errs, errors.New("server: timeouts must not be negative"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server: max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Assist.Model == "" {
		errs = append(errs, errors.New("assist: model must not be empty"))
	}
	return errors.Join(errs...)
}
