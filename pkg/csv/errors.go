// Package csv provides error types for rendering and AST conversion.
package csv

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNonFiniteFloat indicates a NaN or infinite Float, which has no CSV
	// form that reads back as a Float.
	ErrNonFiniteFloat = errors.New("non-finite float")

	// ErrUnsupportedNode indicates an AST node or literal value that has no
	// Table equivalent.
	ErrUnsupportedNode = errors.New("unsupported node")
)

// ValueError reports a value that could not be rendered or converted.
// It provides the position of the value within the Table.
type ValueError struct {
	// Row is the row of the value (1-indexed).
	Row int
	// Column is the column of the value (1-indexed).
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ValueError) Error() string {
	return fmt.Sprintf("csv: value at row %d, column %d: %v", e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValueError) Unwrap() error {
	return e.Err
}
