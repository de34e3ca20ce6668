// Package csv provides configurable options for CSV parsing.
package csv

import (
	"io"

	"github.com/shapestone/shape-tablecsv/internal/parser"
)

// ReaderOptions configures CSV parsing behavior.
//
// The delimiter, quote character and line terminator are fixed and cannot
// be configured.
type ReaderOptions struct {
	// TrimSpace strips leading and trailing white space from unquoted,
	// non-empty fields before type inference. Quoted fields are never trimmed.
	// Default: false
	TrimSpace bool
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		TrimSpace: false,
	}
}

// ParseWithOptions parses CSV text into a Table with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.TrimSpace = true
//	table := csv.ParseWithOptions("  5 ,x\n", opts)
//	// table: [[Int(5), String("x")]]
func ParseWithOptions(input string, opts ReaderOptions) Table {
	return buildTable(parser.NewParser(input).Parse(), opts)
}

// ParseReader reads all of r and parses it as CSV text.
//
// The input is buffered in full before parsing; only errors from r are
// returned.
//
// Example:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	table, err := csv.ParseReader(file, csv.DefaultReaderOptions())
func ParseReader(r io.Reader, opts ReaderOptions) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(string(data), opts), nil
}

// buildTable finalizes every raw field into a Value.
func buildTable(records [][]parser.Field, opts ReaderOptions) Table {
	table := make(Table, len(records))
	for i, record := range records {
		row := make(Row, len(record))
		for j, field := range record {
			row[j] = finalize(field, opts.TrimSpace)
		}
		table[i] = row
	}
	return table
}
