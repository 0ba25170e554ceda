package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/cli"
	"github.com/hlop3z/alabintro/pkg/alabintro"
)

// watchDebounce coalesces the bursts of writes SQLite makes per transaction.
const watchDebounce = 200 * time.Millisecond

func pullCmd() *cobra.Command {
	var (
		opts  pullOptions
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Introspect the database and write the data model",
		Long: `Introspect the database and write the data model.

The document goes to stdout unless --output is given. The relation catalogue
(alabintro.meta.json) is updated so that relation names survive the next pull.
When neither the schema nor the relations changed since the last pull, the
output file and the catalogue are left untouched unless --force is given.`,
		Example: `  alabintro pull -d ./dev.db
  alabintro pull -d postgres://localhost/app -o schema.txt
  alabintro pull --format yaml --join-tables relaxed
  alabintro pull -d ./dev.db -o schema.txt --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := runPull(cmd.Context(), client, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchPull(cmd.Context(), client, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write the data model to this file instead of stdout")
	cmd.Flags().StringP("format", "f", "", "Output format (text, yaml, json)")
	cmd.Flags().Int("concurrency", 0, "Tables introspected in parallel (PostgreSQL)")
	cmd.Flags().Duration("timeout", 0, "Timeout for one pull")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Do not update the relation catalogue")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Write the output and catalogue even when nothing changed")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-pull whenever the SQLite database file changes")

	return cmd
}

// pullOptions are the pull flags that never reach the config file.
type pullOptions struct {
	dryRun bool
	force  bool
}

// runPull performs one pull and writes its outputs.
func runPull(ctx context.Context, client *alabintro.Client, cfg *Config, stdout, stderr io.Writer, opts pullOptions) error {
	res, err := client.Pull(ctx)
	if err != nil {
		return err
	}

	data, err := res.Encode(cfg.Format)
	if err != nil {
		return err
	}

	unchanged := !res.Changed && !opts.force

	switch {
	case cfg.Output == "":
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	case unchanged && fileHolds(cfg.Output, data):
		slog.Debug("output up to date", "path", cfg.Output)
	default:
		if err := writeFile(cfg.Output, data); err != nil {
			return err
		}
	}

	if !opts.dryRun && !unchanged {
		if err := client.SaveMetadata(res); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("pulled %s and %s",
		cli.FormatCount(len(res.Document.Models), "model", "models"),
		cli.FormatCount(len(res.Relations), "many-to-many relation", "many-to-many relations"))
	if cfg.Output != "" {
		summary += " into " + cfg.Output
	}
	if !res.Changed {
		summary += " (no changes)"
	}
	fmt.Fprint(stderr, cli.FormatSuccess(summary))
	return nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return alerr.Wrap(alerr.ErrInvalidConfig, err, "cannot create output directory").With("path", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return alerr.Wrap(alerr.ErrInvalidConfig, err, "cannot write output").With("path", path)
	}
	return nil
}

// fileHolds reports whether the file at path already contains data.
func fileHolds(path string, data []byte) bool {
	current, err := os.ReadFile(path)
	return err == nil && bytes.Equal(current, data)
}

// watchPull re-runs the pull after every change to the SQLite database file
// until ctx is cancelled.
func watchPull(ctx context.Context, client *alabintro.Client, cfg *Config, stdout, stderr io.Writer, opts pullOptions) error {
	if client.Dialect() != "sqlite" {
		return alerr.New(alerr.EUnsupportedDialect, "--watch requires a SQLite database file").
			With("dialect", client.Dialect())
	}

	dbPath, err := filepath.Abs(sqlitePath(cfg.DatabaseURL))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: SQLite replaces -wal and -journal files.
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		return err
	}

	fmt.Fprint(stderr, cli.FormatNote("watching "+dbPath))

	changed := make(chan struct{}, 1)
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isDatabaseFile(event.Name, dbPath) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			slog.Debug("database file changed, pulling", "path", dbPath)
			if err := runPull(ctx, client, cfg, stdout, stderr, opts); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				fmt.Fprint(stderr, cli.FormatError(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprint(stderr, cli.FormatWarning("watcher: "+err.Error()))
		}
	}
}

// sqlitePath strips URL prefixes and query parameters from a SQLite URL.
func sqlitePath(url string) string {
	for _, prefix := range []string{"sqlite://", "sqlite3://", "file:"} {
		url = strings.TrimPrefix(url, prefix)
	}
	path, _, _ := strings.Cut(url, "?")
	return path
}

// isDatabaseFile reports whether name is the database file or one of its
// -wal or -journal companions.
func isDatabaseFile(name, dbPath string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == dbPath || abs == dbPath+"-wal" || abs == dbPath+"-journal"
}
