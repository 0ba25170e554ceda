// Package cli provides Cargo/rustc-style terminal output for alabintro:
// colored labels, error diagnostics and relation tables.
package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode selects how command output is rendered.
type OutputMode int

const (
	// ModeTTY renders colored output for an interactive terminal.
	ModeTTY OutputMode = iota
	// ModePlain renders uncolored text for pipes and CI logs.
	ModePlain
	// ModeJSON renders machine-readable JSON.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModeTTY:
		return "tty"
	case ModeJSON:
		return "json"
	default:
		return "plain"
	}
}

// Config is the output configuration of one invocation.
type Config struct {
	Mode OutputMode
}

// DefaultConfig detects the mode from stdout and the environment. Colors
// are used only on a terminal, and never when NO_COLOR is set
// (https://no-color.org/) or TERM is dumb.
func DefaultConfig() *Config {
	return &Config{Mode: detectMode(os.Stdout)}
}

func detectMode(out *os.File) OutputMode {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return ModePlain
	}
	fd := out.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return ModeTTY
	}
	return ModePlain
}

func (c *Config) IsTTY() bool { return c.Mode == ModeTTY }
func (c *Config) IsJSON() bool { return c.Mode == ModeJSON }

var current *Config

// Default returns the configuration installed by Configure, detecting one
// on first use.
func Default() *Config {
	if current == nil {
		current = DefaultConfig()
	}
	return current
}

// SetDefault replaces the package configuration.
func SetDefault(cfg *Config) {
	current = cfg
}

// Configure installs the configuration for one CLI invocation. jsonOut
// selects ModeJSON; noColor forces ModePlain on a terminal.
func Configure(jsonOut, noColor bool) *Config {
	cfg := DefaultConfig()
	switch {
	case jsonOut:
		cfg.Mode = ModeJSON
	case noColor:
		cfg.Mode = ModePlain
	}
	SetDefault(cfg)
	return cfg
}

// EnableColors reports whether output should carry ANSI styling.
func EnableColors() bool {
	return Default().IsTTY()
}
