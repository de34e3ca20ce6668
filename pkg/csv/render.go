// Package csv provides Table rendering to CSV bytes.
//
// This file implements the serializer, converting typed rows back into
// CSV text that Parse reads back to the same values.
package csv

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Serialize renders t as CSV text.
//
// Every row, including the last, is terminated by a single LF. Fields are
// joined with commas and rendered as follows:
//   - Integer and Float values use base-10 digits with no exponent; a Float
//     always carries a decimal point so it reads back as a Float
//   - Null is an empty, unquoted field
//   - an empty String is rendered as ""
//   - a String is quoted when it contains a comma, quote or newline, has
//     leading or trailing whitespace, or would otherwise read back as a number;
//     embedded quotes are doubled
//
// Numbers are only read back as numbers when unsigned: Int(-5) is written as
// -5 and parses as String("-5").
//
// Serialize never fails. Non-finite floats are written as NaN, +Inf and -Inf,
// which read back as Strings; use Render to reject them instead.
//
// Example:
//
//	text := csv.Serialize(csv.Table{
//	    {csv.String("Leno, Jay"), csv.Int(10)},
//	})
//	// text: "\"Leno, Jay\",10\n"
func Serialize(t Table) string {
	var buf bytes.Buffer
	_ = writeTable(&buf, t, false)
	return buf.String()
}

// Render converts t to CSV bytes, rejecting values that cannot round-trip.
//
// Output is identical to Serialize. A NaN or infinite Float returns a
// *ValueError wrapping ErrNonFiniteFloat that names its row and column.
func Render(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, t, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(buf *bytes.Buffer, t Table, strict bool) error {
	for r, row := range t {
		for c, v := range row {
			if c > 0 {
				buf.WriteByte(',')
			}
			if strict && v.kind == KindFloat && !isFinite(v.f) {
				return &ValueError{Row: r + 1, Column: c + 1, Err: ErrNonFiniteFloat}
			}
			writeValue(buf, v)
		}
		buf.WriteByte('\n')
	}
	return nil
}

// writeValue writes one field to the buffer.
func writeValue(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindInteger:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		buf.WriteString(formatFloat(v.f))
	case KindString:
		writeStringField(buf, v.s)
	}
}

// formatFloat renders f with the fewest digits that parse back to f.
func formatFloat(f float64) string {
	if !isFinite(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// writeStringField writes a String value with quoting and escaping.
func writeStringField(buf *bytes.Buffer, s string) {
	if s == "" {
		buf.WriteString(`""`)
		return
	}

	if !needsQuoting(s) && !looksNumeric(s) {
		buf.WriteString(s)
		return
	}

	buf.WriteByte('"')
	for {
		i := strings.IndexByte(s, '"')
		if i < 0 {
			break
		}
		buf.WriteString(s[:i+1])
		buf.WriteByte('"')
		s = s[i+1:]
	}
	buf.WriteString(s)
	buf.WriteByte('"')
}

// needsQuoting reports whether s contains a comma, quote or LF, or starts
// or ends with whitespace.
func needsQuoting(s string) bool {
	if strings.ContainsAny(s, ",\"\n") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
