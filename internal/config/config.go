// Package config loads compendium settings from an optional .env file and
// COMPENDIUM_* environment variables. Command-line flags are applied on
// top by the CLI.
package config

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "COMPENDIUM_"

// DefaultEnvFile is read when present
const DefaultEnvFile = ".env"

// Log levels accepted by LogLevel
var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds everything a run needs. Empty RedisAddr, SQLitePath or
// Report disables that sink. At most one catalog store may be set.
type Config struct {
	MonstersInput  string `env:"MONSTERS_INPUT" envDefault:"data/monsters.txt"`
	MonstersOutput string `env:"MONSTERS_OUTPUT" envDefault:"data/monsters-legendary.json"`
	SpellsInput    string `env:"SPELLS_INPUT" envDefault:"data/spells.txt"`
	SpellsOutput   string `env:"SPELLS_OUTPUT" envDefault:"data/spells.json"`

	Report     string `env:"REPORT"`
	RedisAddr  string `env:"REDIS_ADDR"`
	RedisTLS   bool   `env:"REDIS_TLS"`
	SQLitePath string `env:"SQLITE_PATH"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads envFile into the process environment, if it exists, and then
// parses the environment. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to load %s", envFile)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	return cfg, nil
}

// Validate checks the paths and the log level
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("monsters_input", c.MonstersInput, vb)
	errors.ValidateRequired("monsters_output", c.MonstersOutput, vb)
	errors.ValidateRequired("spells_input", c.SpellsInput, vb)
	errors.ValidateRequired("spells_output", c.SpellsOutput, vb)
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), logLevels, vb)
	if c.RedisAddr != "" && c.SQLitePath != "" {
		vb.InvalidField("sqlite_path", "choose one catalog store, redis_addr is also set")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel onto slog. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
