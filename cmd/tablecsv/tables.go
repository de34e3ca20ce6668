// Commands that save, load and manage tables in the SQLite store.
package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

func newImportCmd(c *cli) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Parse CSV and save it in the database",
		Long: `Import parses CSV and saves the typed table, printing its import id.

Example:
  tablecsv import hosts.csv
  tablecsv import --name hosts - < hosts.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.parseInput(cmd, args)
			if err != nil {
				return err
			}

			if name == "" {
				name = filepath.Base(args[0])
				if args[0] == "-" {
					name = "stdin"
				}
			}

			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			imp, err := s.Save(cmd.Context(), name, table)
			if err != nil {
				return fmt.Errorf("save table: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), imp.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name recorded for the import (default: file name)")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id>",
		Short: "Write a saved table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			table, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load table: %w", err)
			}

			c.log.Debug("exporting", zap.String("id", args[0]), zap.Int("rows", len(table)))
			_, err = fmt.Fprint(cmd.OutOrStdout(), csv.Serialize(table))
			return err
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved tables, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			imports, err := s.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tables: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROWS\tIMPORTED")
			for _, imp := range imports {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					imp.ID, imp.Name, imp.Rows, imp.ImportedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete table: %w", err)
			}
			return nil
		},
	}
}
