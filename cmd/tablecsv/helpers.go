// Shared helpers for tablecsv CLI commands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-tablecsv/internal/store"
	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

// openInput opens the named file, or stdin for "-" or no argument.
// The caller must close the returned reader.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// readerOptions builds parse options from configuration.
func (c *cli) readerOptions() csv.ReaderOptions {
	opts := csv.DefaultReaderOptions()
	opts.TrimSpace = c.cfg.GetBool(cfgKeyTrim)
	return opts
}

// parseInput reads and parses CSV from the file named in args or stdin.
func (c *cli) parseInput(cmd *cobra.Command, args []string) (csv.Table, error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	table, err := csv.ParseReader(in, c.readerOptions())
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return table, nil
}

// openStore opens the configured database. The caller must close it.
func (c *cli) openStore(ctx context.Context) (*store.Store, error) {
	path := c.cfg.GetString(cfgKeyDatabase)
	s, err := store.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return s, nil
}
