// Parse and format commands convert between CSV and typed JSON tables.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

func newParseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse CSV into a typed JSON table",
		Long: `Parse reads CSV from a file or stdin and writes the table as JSON.

Each value is written as {"int":n}, {"float":x}, {"string":s} or null.

Example:
  tablecsv parse hosts.csv
  printf '  5 ,x\n' | tablecsv parse --trim`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.parseInput(cmd, args)
			if err != nil {
				return err
			}

			output, err := json.Marshal(table)
			if err != nil {
				return fmt.Errorf("marshal table: %w", err)
			}

			c.log.Debug("parsed", zap.Int("rows", len(table)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return err
		},
	}
}

func newFormatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "format [file|-]",
		Short: "Render a typed JSON table as CSV",
		Long: `Format reads a JSON table in the form written by parse and writes CSV.

Example:
  tablecsv parse hosts.csv | tablecsv format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			var table csv.Table
			if err := json.NewDecoder(in).Decode(&table); err != nil {
				return fmt.Errorf("decode table: %w", err)
			}

			output, err := csv.Render(table)
			if err != nil {
				return fmt.Errorf("render table: %w", err)
			}

			c.log.Debug("formatted", zap.Int("rows", len(table)))
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}
}
