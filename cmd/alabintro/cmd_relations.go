package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/alabintro/internal/cli"
	"github.com/hlop3z/alabintro/internal/m2m"
)

func relationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relations",
		Aliases: []string{"rel"},
		Short:   "List inferred many-to-many relations",
		Long: `List the many-to-many relations inferred from join tables, with their
relation names, field names and where each name came from:

  default      derived from the naming convention
  reused       relation and field names kept from alabintro.meta.json
  reused-name  self-relation whose relation name was kept`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(configFrom(cmd))
			if err != nil {
				return err
			}
			defer client.Close()

			res, err := client.Pull(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.Default().IsJSON() {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Relations)
			}

			if len(res.Relations) == 0 {
				fmt.Fprint(out, cli.FormatNote("no join tables found"))
				return nil
			}

			tbl := cli.NewStyledTable("JOIN TABLE", "RELATION", "MODEL A", "FIELD A", "MODEL B", "FIELD B", "SOURCE")
			for _, r := range res.Relations {
				name := r.Relation
				if name == "" {
					name = cli.Muted("-")
				}
				source := r.Provenance
				if source != m2m.Synthesized.String() {
					source = cli.Highlight(source)
				}
				tbl.AddRow(r.JoinTable, name, r.ModelA, r.FieldA, r.ModelB, r.FieldB, source)
			}
			fmt.Fprint(out, tbl.String())
			fmt.Fprintln(out, cli.Muted(cli.FormatCount(tbl.Len(), "relation", "relations")))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print relations as JSON")

	return cmd
}
