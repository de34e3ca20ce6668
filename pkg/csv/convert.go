// Package csv provides conversion between Tables and Shape AST nodes.
package csv

import (
	"fmt"
	"math"

	"github.com/shapestone/shape-core/pkg/ast"
)

// TableToNode converts a Table to an AST node.
//
// The result is:
//   - *ast.ArrayDataNode for the table (array of rows)
//   - *ast.ArrayDataNode for each row (array of fields)
//   - *ast.LiteralNode for each field, holding int64, float64, string or nil
//
// Example:
//
//	node := csv.TableToNode(csv.Parse("name,age\nAlice,30\n"))
//	rows := node.(*ast.ArrayDataNode).Elements()
func TableToNode(t Table) ast.SchemaNode {
	pos := ast.ZeroPosition()

	rows := make([]ast.SchemaNode, len(t))
	for i, row := range t {
		fields := make([]ast.SchemaNode, len(row))
		for j, v := range row {
			fields[j] = ast.NewLiteralNode(v.Interface(), pos)
		}
		rows[i] = ast.NewArrayDataNode(fields, pos)
	}
	return ast.NewArrayDataNode(rows, pos)
}

// NodeToTable converts an AST node back to a Table.
//
// The node must be an *ast.ArrayDataNode of *ast.ArrayDataNode rows whose
// elements are *ast.LiteralNode. Literal values may be nil, a string, or
// any Go integer or float type; integers are widened to int64 and float32
// to float64. Anything else returns a *ValueError wrapping ErrUnsupportedNode.
//
// Example:
//
//	node := csv.TableToNode(table)
//	back, err := csv.NodeToTable(node)
func NodeToTable(node ast.SchemaNode) (Table, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("csv: table node is %T: %w", node, ErrUnsupportedNode)
	}

	rowNodes := file.Elements()
	table := make(Table, len(rowNodes))
	for i, rowNode := range rowNodes {
		record, ok := rowNode.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("csv: row %d node is %T: %w", i+1, rowNode, ErrUnsupportedNode)
		}

		fieldNodes := record.Elements()
		row := make(Row, len(fieldNodes))
		for j, fieldNode := range fieldNodes {
			v, err := literalValue(fieldNode)
			if err != nil {
				return nil, &ValueError{Row: i + 1, Column: j + 1, Err: err}
			}
			row[j] = v
		}
		table[i] = row
	}
	return table, nil
}

// literalValue maps a literal node's Go value onto a Value.
func literalValue(node ast.SchemaNode) (Value, error) {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return Value{}, fmt.Errorf("field node is %T: %w", node, ErrUnsupportedNode)
	}

	switch val := lit.Value().(type) {
	case nil:
		return Null(), nil
	case string:
		return String(val), nil
	case int64:
		return Int(val), nil
	case int:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64: %w", val, ErrUnsupportedNode)
		}
		return Int(int64(val)), nil
	case uint64:
		if val > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64: %w", val, ErrUnsupportedNode)
		}
		return Int(int64(val)), nil
	case float64:
		return Float(val), nil
	case float32:
		return Float(float64(val)), nil
	default:
		return Value{}, fmt.Errorf("literal of type %T: %w", val, ErrUnsupportedNode)
	}
}

// RenderNode converts an AST node to CSV bytes.
//
// The node should be the result of TableToNode, or built the same way.
//
// Example:
//
//	bytes, err := csv.RenderNode(csv.TableToNode(table))
func RenderNode(node ast.SchemaNode) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}
	table, err := NodeToTable(node)
	if err != nil {
		return nil, err
	}
	return Render(table)
}
