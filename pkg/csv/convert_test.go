package csv_test

import (
	"errors"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

func TestTableToNode(t *testing.T) {
	table := csv.Table{
		{csv.String("a"), csv.Int(1)},
		{csv.Float(2.5), csv.Null(), csv.String("")},
	}

	node := csv.TableToNode(table)
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("expected *ast.ArrayDataNode, got %T", node)
	}
	rows := file.Elements()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	second, ok := rows[1].(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("expected row *ast.ArrayDataNode, got %T", rows[1])
	}
	fields := second.Elements()
	want := []interface{}{2.5, nil, ""}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		lit, ok := fields[i].(*ast.LiteralNode)
		if !ok {
			t.Fatalf("field %d: expected *ast.LiteralNode, got %T", i, fields[i])
		}
		if lit.Value() != w {
			t.Errorf("field %d: value = %#v, want %#v", i, lit.Value(), w)
		}
	}
}

func TestNodeToTable_RoundTrip(t *testing.T) {
	table := csv.Parse("\"Leno, Jay\",10\n\"Conan \"\"Conando\"\" O'Brien\",11:35,4.5,\n")

	back, err := csv.NodeToTable(csv.TableToNode(table))
	if err != nil {
		t.Fatalf("NodeToTable() error = %v", err)
	}
	if !back.Equal(table) {
		t.Errorf("NodeToTable() = %#v, want %#v", back, table)
	}
}

func TestNodeToTable_Widening(t *testing.T) {
	pos := ast.ZeroPosition()
	node := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewArrayDataNode([]ast.SchemaNode{
			ast.NewLiteralNode(7, pos),
			ast.NewLiteralNode(uint8(8), pos),
			ast.NewLiteralNode(float32(0.5), pos),
		}, pos),
	}, pos)

	got, err := csv.NodeToTable(node)
	if err != nil {
		t.Fatalf("NodeToTable() error = %v", err)
	}
	want := csv.Table{{csv.Int(7), csv.Int(8), csv.Float(0.5)}}
	if !got.Equal(want) {
		t.Errorf("NodeToTable() = %#v, want %#v", got, want)
	}
}

func TestNodeToTable_Errors(t *testing.T) {
	pos := ast.ZeroPosition()

	tests := []struct {
		name string
		node ast.SchemaNode
	}{
		{
			name: "literal at table level",
			node: ast.NewLiteralNode("x", pos),
		},
		{
			name: "literal at row level",
			node: ast.NewArrayDataNode([]ast.SchemaNode{ast.NewLiteralNode("x", pos)}, pos),
		},
		{
			name: "unsupported literal type",
			node: ast.NewArrayDataNode([]ast.SchemaNode{
				ast.NewArrayDataNode([]ast.SchemaNode{ast.NewLiteralNode(true, pos)}, pos),
			}, pos),
		},
		{
			name: "uint64 overflow",
			node: ast.NewArrayDataNode([]ast.SchemaNode{
				ast.NewArrayDataNode([]ast.SchemaNode{ast.NewLiteralNode(uint64(1<<63), pos)}, pos),
			}, pos),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csv.NodeToTable(tt.node)
			if !errors.Is(err, csv.ErrUnsupportedNode) {
				t.Errorf("NodeToTable() error = %v, want ErrUnsupportedNode", err)
			}
		})
	}
}

func TestRenderNode(t *testing.T) {
	input := "\"Leno, Jay\",10\n\"3\",3.0\n"
	got, err := csv.RenderNode(csv.TableToNode(csv.Parse(input)))
	if err != nil {
		t.Fatalf("RenderNode() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("RenderNode() = %q, want %q", got, input)
	}

	empty, err := csv.RenderNode(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("RenderNode(nil) = %q, %v", empty, err)
	}
}
