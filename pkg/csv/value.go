package csv

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which scalar a Value holds.
type Kind uint8

const (
	// KindNull is the zero Kind; the zero Value is Null.
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindString
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a single CSV field: an Integer, a Float, a String or Null.
// The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Row is an ordered sequence of values. Rows in a Table may differ in length.
type Row []Value

// Table is an ordered sequence of rows, one per CSV line.
type Table []Row

// Null returns the Null value.
func Null() Value { return Value{} }

// Int returns an Integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a String value. An empty string is a String, not Null.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer held by v and whether v is an Integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float held by v and whether v is a Float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string held by v and whether v is a String.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Interface returns v as int64, float64, string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether v and w have the same kind and value.
// Two NaN floats are equal.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == w.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(w.f) {
			return true
		}
		return v.f == w.f
	case KindString:
		return v.s == w.s
	default:
		return true
	}
}

// GoString renders v as the constructor call that builds it, which keeps
// test failure output readable.
func (v Value) GoString() string {
	switch v.kind {
	case KindInteger:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("Float(%s)", strconv.FormatFloat(v.f, 'f', -1, 64))
	case KindString:
		return fmt.Sprintf("String(%q)", v.s)
	default:
		return "Null()"
	}
}

// Equal reports whether r and s hold equal values in the same order.
func (r Row) Equal(s Row) bool {
	if len(r) != len(s) {
		return false
	}
	for i := range r {
		if !r[i].Equal(s[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether t and u hold equal rows in the same order.
func (t Table) Equal(u Table) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if !t[i].Equal(u[i]) {
			return false
		}
	}
	return true
}

// jsonValue is the tagged JSON form of a non-null Value.
type jsonValue struct {
	Int    *int64   `json:"int,omitempty"`
	Float  *float64 `json:"float,omitempty"`
	String *string  `json:"string,omitempty"`
}

// MarshalJSON encodes v as {"int":n}, {"float":x}, {"string":s} or null.
// Non-finite floats cannot be represented in JSON and return an error.
func (v Value) MarshalJSON() ([]byte, error) {
	var jv jsonValue
	switch v.kind {
	case KindInteger:
		jv.Int = &v.i
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, ErrNonFiniteFloat
		}
		jv.Float = &v.f
	case KindString:
		jv.String = &v.s
	default:
		return []byte("null"), nil
	}
	return json.Marshal(jv)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null()
		return nil
	}

	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}

	if countSet(jv) != 1 {
		return fmt.Errorf("csv: value must have exactly one of int, float, string: %s", data)
	}
	switch {
	case jv.Int != nil:
		*v = Int(*jv.Int)
	case jv.Float != nil:
		*v = Float(*jv.Float)
	default:
		*v = String(*jv.String)
	}
	return nil
}

func countSet(jv jsonValue) int {
	n := 0
	if jv.Int != nil {
		n++
	}
	if jv.Float != nil {
		n++
	}
	if jv.String != nil {
		n++
	}
	return n
}
