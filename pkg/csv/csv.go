// Package csv provides a typed CSV codec.
//
// Parse turns CSV text into a Table of rows of scalar values, inferring each
// unquoted field as an Integer, a Float, a String or Null. Serialize turns a
// Table back into CSV text, quoting exactly the Strings that would otherwise
// read back as a different value.
//
// # Wire Format
//
// The format is fixed: ',' separates fields, '"' quotes them, a doubled '""'
// inside quotes is a literal quote, and LF ends a row. CR is ordinary field
// content and no row is treated as a header.
//
// # Type Inference
//
// Only unquoted fields are inferred, in this order:
//
//   - empty -> Null (a quoted empty field "" is also Null)
//   - one or more ASCII digits -> Integer
//   - digits with one '.' and a digit on at least one side -> Float
//   - anything else -> String
//
// Signs and exponents are not numeric, so "-5" and "1e3" are Strings.
//
// # Permissive Parsing
//
// Parse never fails. Malformed quoting is resolved deterministically: a quote
// that opens mid-field keeps the content already read, an unterminated quote
// runs to the end of input, and text after a closing quote is appended to the
// same field.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call builds its own Table with no shared mutable state.
//
// # Example usage:
//
//	table := csv.Parse("\"Leno, Jay\",10\n\"Conan \"\"Conando\"\" O'Brien\",11:35\n")
//	// table[0]: [String("Leno, Jay"), Int(10)]
//	// table[1]: [String("Conan \"Conando\" O'Brien"), String("11:35")]
//
//	text := csv.Serialize(table)
//	// text is the original input
package csv

// Parse parses CSV text into a Table with default options.
//
// A single trailing LF is ignored. Empty input yields one row holding one
// Null, the same as "\n".
//
// Example:
//
//	table := csv.Parse("10,10.5,\"10\",\n")
//	// table: [[Int(10), Float(10.5), String("10"), Null()]]
func Parse(input string) Table {
	return ParseWithOptions(input, DefaultReaderOptions())
}

// Format returns the format identifier for this codec.
func Format() string {
	return "CSV"
}
