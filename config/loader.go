package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML configuration file at path on top of the defaults, then
// applies the LOTS_* environment variables. A missing file is not an error:
// the defaults are used instead.
//
// The returned Config has not been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot read configuration %q: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides reads the LOTS_* environment variables and overwrites the
// corresponding fields when they are set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Trades.File, "LOTS_TRADES_FILE")
	setStr(&cfg.Trades.Currency, "LOTS_CURRENCY")

	setStr(&cfg.Server.Addr, "LOTS_SERVER_ADDR")
	setDuration(&cfg.Server.ReadTimeout, "LOTS_SERVER_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, "LOTS_SERVER_WRITE_TIMEOUT")
	setInt64(&cfg.Server.MaxBodyBytes, "LOTS_SERVER_MAX_BODY_BYTES")

	setStr(&cfg.Assist.Model, "LOTS_ASSIST_MODEL")

	setBool(&cfg.Verbose, "LOTS_VERBOSE")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
