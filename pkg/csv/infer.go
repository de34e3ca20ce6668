package csv

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shapestone/shape-tablecsv/internal/parser"
)

// isInteger reports whether s is one or more ASCII digits: ^[0-9]+$.
func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isFloat reports whether s is digits with exactly one decimal point and at
// least one digit on either side: ^([0-9]+\.[0-9]*|[0-9]*\.[0-9]+)$.
// A bare "." is not a float.
func isFloat(s string) bool {
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s) == 1 {
		return false
	}
	intPart, fracPart := s[:dot], s[dot+1:]
	return (intPart == "" || isInteger(intPart)) && (fracPart == "" || isInteger(fracPart))
}

// looksNumeric reports whether an unquoted s would be inferred as a number.
func looksNumeric(s string) bool {
	return isInteger(s) || isFloat(s)
}

// finalize converts a raw field into a Value.
//
// An empty field is Null whether or not it was quoted. Any other quoted
// field is a String taken verbatim. Unquoted fields are optionally trimmed,
// then tried as Integer before Float, falling back to String.
func finalize(field parser.Field, trim bool) Value {
	text := field.Text
	if text == "" {
		return Null()
	}
	if field.Quoted {
		return String(text)
	}
	if trim {
		text = strings.TrimFunc(text, unicode.IsSpace)
	}
	return infer(text)
}

// infer types text that was not quoted in the source.
func infer(text string) Value {
	if isInteger(text) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i)
		}
		// Out of int64 range: keep the digits rather than lose precision.
		return String(text)
	}
	if isFloat(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}
	return String(text)
}
