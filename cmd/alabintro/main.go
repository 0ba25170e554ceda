// Package main provides the CLI for alabintro.
// alabintro reads the schema of a live PostgreSQL or SQLite database and
// writes a data model document, turning join tables into many-to-many
// relation fields whose names stay stable across runs.
//
// Usage:
//
//	alabintro init               # Write alabintro.yaml
//	alabintro pull               # Introspect and print the data model
//	alabintro pull -o schema.txt # Write the data model to a file
//	alabintro pull --watch       # Re-pull when the SQLite file changes
//	alabintro relations          # List inferred many-to-many relations
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// configKey stores the loaded *Config in the command context.
type configKey struct{}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:   "alabintro",
		Short: "Introspect a database into a data model",
		Long: `alabintro reads the schema of a live PostgreSQL or SQLite database and writes a
data model document. Join tables become many-to-many relation fields, and
relation names recorded in alabintro.meta.json are kept on later runs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "init" {
				return nil
			}

			cfg, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			cli.Configure(jsonOut, noColor)

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: "+DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringP("database-url", "d", "", "Database connection URL")
	rootCmd.PersistentFlags().String("dialect", "", "Database dialect (postgres, sqlite); detected from the URL when empty")
	rootCmd.PersistentFlags().StringP("metadata", "m", "", "Relation catalogue file (default: alabintro.meta.json)")
	rootCmd.PersistentFlags().String("join-tables", "", "Join table detection (strict, relaxed)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Tables to leave out")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		initCmd(),
		pullCmd(),
		relationsCmd(),
	)

	return rootCmd
}

// configFrom returns the config loaded by the root command.
func configFrom(cmd *cobra.Command) *Config {
	cfg, _ := cmd.Context().Value(configKey{}).(*Config)
	return cfg
}

// newLogger builds the stderr text logger at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, alerr.InvalidChoice("log_level", level, []string{"debug", "info", "warn", "error"})
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}
