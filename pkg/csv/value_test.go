package csv_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind csv.Kind
		want string
	}{
		{csv.KindNull, "null"},
		{csv.KindInteger, "integer"},
		{csv.KindFloat, "float"},
		{csv.KindString, "string"},
		{csv.Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	var zero csv.Value
	if !zero.IsNull() || zero.Kind() != csv.KindNull {
		t.Errorf("zero Value should be Null, got %#v", zero)
	}

	if i, ok := csv.Int(7).Int(); !ok || i != 7 {
		t.Errorf("Int(7).Int() = %d, %v", i, ok)
	}
	if _, ok := csv.Int(7).Float(); ok {
		t.Error("Int(7).Float() should report false")
	}
	if f, ok := csv.Float(2.5).Float(); !ok || f != 2.5 {
		t.Errorf("Float(2.5).Float() = %v, %v", f, ok)
	}
	if s, ok := csv.String("x").Str(); !ok || s != "x" {
		t.Errorf("String(\"x\").Str() = %q, %v", s, ok)
	}
	if csv.String("").IsNull() {
		t.Error("String(\"\") should not be Null")
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b csv.Value
		want bool
	}{
		{"same integer", csv.Int(1), csv.Int(1), true},
		{"integer vs float", csv.Int(1), csv.Float(1), false},
		{"integer vs string", csv.Int(1), csv.String("1"), false},
		{"null vs empty string", csv.Null(), csv.String(""), false},
		{"nulls", csv.Null(), csv.Null(), true},
		{"NaN equals NaN", csv.Float(math.NaN()), csv.Float(math.NaN()), true},
		{"different strings", csv.String("a"), csv.String("b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%#v.Equal(%#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTable_Equal(t *testing.T) {
	a := csv.Table{{csv.Int(1), csv.Null()}, {csv.String("x")}}
	b := csv.Table{{csv.Int(1), csv.Null()}, {csv.String("x")}}
	if !a.Equal(b) {
		t.Error("identical tables should be equal")
	}
	if a.Equal(csv.Table{{csv.Int(1)}, {csv.String("x")}}) {
		t.Error("tables with different row widths should differ")
	}
	if a.Equal(a[:1]) {
		t.Error("tables with different row counts should differ")
	}
}

func TestValue_JSON(t *testing.T) {
	row := csv.Row{csv.Int(10), csv.Float(10.5), csv.String("10"), csv.Null(), csv.Int(0), csv.String("")}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `[{"int":10},{"float":10.5},{"string":"10"},null,{"int":0},{"string":""}]`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var back csv.Row
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !back.Equal(row) {
		t.Errorf("json round trip = %#v, want %#v", back, row)
	}
}

func TestValue_JSONErrors(t *testing.T) {
	if _, err := json.Marshal(csv.Float(math.Inf(1))); !errors.Is(err, csv.ErrNonFiniteFloat) {
		t.Errorf("json.Marshal(+Inf) error = %v, want ErrNonFiniteFloat", err)
	}

	for _, input := range []string{`{}`, `{"int":1,"string":"x"}`, `"bare"`, `5`} {
		var v csv.Value
		if err := json.Unmarshal([]byte(input), &v); err == nil {
			t.Errorf("json.Unmarshal(%s) should fail, got %#v", input, v)
		}
	}
}
