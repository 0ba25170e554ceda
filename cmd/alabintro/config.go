package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/metadata"
	"github.com/hlop3z/alabintro/pkg/alabintro"
)

// DefaultConfigFile is read when --config is not given.
const DefaultConfigFile = "alabintro.yaml"

// envPrefix namespaces environment overrides: ALABINTRO_DATABASE_URL -> database_url.
const envPrefix = "ALABINTRO_"

// Config represents the alabintro.yaml configuration file.
type Config struct {
	DatabaseURL  string        `koanf:"database_url" yaml:"database_url"`
	Dialect      string        `koanf:"dialect" yaml:"dialect,omitempty"`
	MetadataFile string        `koanf:"metadata_file" yaml:"metadata_file"`
	Output       string        `koanf:"output" yaml:"output,omitempty"`
	Format       string        `koanf:"format" yaml:"format"`
	JoinTables   string        `koanf:"join_tables" yaml:"join_tables"`
	Concurrency  int           `koanf:"concurrency" yaml:"concurrency"`
	Exclude      []string      `koanf:"exclude" yaml:"exclude,omitempty"`
	Timeout      time.Duration `koanf:"timeout" yaml:"timeout"`
	LogLevel     string        `koanf:"log_level" yaml:"log_level"`
}

// defaults are the lowest-precedence layer.
func defaults() map[string]any {
	return map[string]any{
		"metadata_file": metadata.DefaultFile,
		"format":        "text",
		"join_tables":   "strict",
		"concurrency":   4,
		"timeout":       "30s",
		"log_level":     "warn",
	}
}

// flagKeys maps flag names onto config keys. Flags not listed here are
// command-local and never reach the config.
var flagKeys = map[string]string{
	"database-url": "database_url",
	"dialect":      "dialect",
	"metadata":     "metadata_file",
	"output":       "output",
	"format":       "format",
	"join-tables":  "join_tables",
	"concurrency":  "concurrency",
	"exclude":      "exclude",
	"timeout":      "timeout",
	"log-level":    "log_level",
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults.
// DATABASE_URL is used when nothing else sets the database URL.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, alerr.Wrap(alerr.ErrInvalidConfig, err, "failed to parse config file").
				With("path", path)
		}
	} else if cfgFile != "" || !errors.Is(err, fs.ErrNotExist) {
		return nil, alerr.Wrap(alerr.ErrInvalidConfig, err, "cannot read config file").
			With("path", path)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, alerr.Wrap(alerr.ErrInvalidConfig, err, "unable to decode config")
	}

	cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return &cfg, nil
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// clientOptions converts the config into client options.
func (c *Config) clientOptions() []alabintro.Option {
	opts := []alabintro.Option{
		alabintro.WithDatabaseURL(c.DatabaseURL),
		alabintro.WithMetadataFile(c.MetadataFile),
		alabintro.WithJoinTables(c.JoinTables),
		alabintro.WithConcurrency(c.Concurrency),
		alabintro.WithExcludeTables(c.Exclude...),
	}
	if c.Dialect != "" {
		opts = append(opts, alabintro.WithDialect(c.Dialect))
	}
	if c.Timeout > 0 {
		opts = append(opts, alabintro.WithTimeout(c.Timeout))
	}
	return opts
}

// newClient creates a client from config.
func newClient(cfg *Config) (*alabintro.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, alerr.New(alerr.ErrMissingSetting, "database URL required").
			WithHelp("pass --database-url, set DATABASE_URL, or add database_url to " + DefaultConfigFile)
	}
	return alabintro.New(cfg.clientOptions()...)
}
