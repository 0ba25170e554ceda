package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/alabintro/internal/alerr"
	"github.com/hlop3z/alabintro/internal/cli"
	"github.com/hlop3z/alabintro/internal/metadata"
)

// initFile is the layout written by init. Timeout stays a string so the
// file reads "30s" rather than nanoseconds.
type initFile struct {
	DatabaseURL  string `yaml:"database_url"`
	MetadataFile string `yaml:"metadata_file"`
	Format       string `yaml:"format"`
	JoinTables   string `yaml:"join_tables"`
	Concurrency  int    `yaml:"concurrency"`
	Timeout      string `yaml:"timeout"`
	LogLevel     string `yaml:"log_level"`
}

const initHeader = `# alabintro.yaml
# Environment overrides use the ALABINTRO_ prefix (ALABINTRO_DATABASE_URL).
# database_url may reference variables: postgres://${PGUSER}@localhost/app
`

// initCmd writes a starter alabintro.yaml.
func initCmd() *cobra.Command {
	var (
		force bool
		url   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create " + DefaultConfigFile,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = DefaultConfigFile
			}

			if _, err := os.Stat(path); err == nil && !force {
				return alerr.New(alerr.ErrInvalidConfig, "config file already exists").
					With("path", path).
					WithHelp("pass --force to overwrite it")
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			data, err := renderInitFile(url)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return alerr.Wrap(alerr.ErrInvalidConfig, err, "failed to create config file").With("path", path)
			}

			fmt.Fprint(cmd.OutOrStdout(), cli.FormatSuccess("created "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&url, "url", "sqlite://./dev.db", "Database URL written to the file")

	return cmd
}

// renderInitFile encodes the starter config.
func renderInitFile(url string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(initHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(initFile{
		DatabaseURL:  url,
		MetadataFile: metadata.DefaultFile,
		Format:       "text",
		JoinTables:   "strict",
		Concurrency:  4,
		Timeout:      "30s",
		LogLevel:     "warn",
	}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
