// Package main provides the tablecsv CLI.
//
// tablecsv converts between CSV text and typed JSON tables, and keeps parsed
// tables in a SQLite database.
package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
