// Package store persists Tables in SQLite.
//
// Each saved Table is an import: a catalog entry with a generated id, plus one
// row per table row and one cell per value. Cells are written into an untyped
// column, so SQLite's storage classes (INTEGER, REAL, TEXT, NULL) carry each
// value's kind and a loaded Table is identical to the saved one.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

//go:embed schema.sql
var schemaSQL string

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrImportNotFound is returned when no import has the requested id.
var ErrImportNotFound = errors.New("import not found")

// Import describes a saved Table.
type Import struct {
	ID         string
	Name       string
	Rows       int
	ImportedAt time.Time
}

// Store is a SQLite-backed collection of Tables.
// It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
// The parent directory is created if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	Logger().Debug("store opened", zap.String("path", path))
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes t under a new import id in a single transaction.
// A NaN or infinite Float returns a *csv.ValueError wrapping
// csv.ErrNonFiniteFloat and nothing is written.
func (s *Store) Save(ctx context.Context, name string, t csv.Table) (Import, error) {
	if err := checkFinite(t); err != nil {
		return Import{}, err
	}

	imp := Import{
		ID:         uuid.NewString(),
		Name:       name,
		Rows:       len(t),
		ImportedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is a no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, name, row_count, imported_at) VALUES (?, ?, ?, ?)`,
		imp.ID, imp.Name, imp.Rows, imp.ImportedAt.Format(timeFormat),
	); err != nil {
		return Import{}, fmt.Errorf("insert import: %w", err)
	}

	rowStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO table_rows (import_id, row_idx, width) VALUES (?, ?, ?)`)
	if err != nil {
		return Import{}, fmt.Errorf("prepare row insert: %w", err)
	}
	defer rowStmt.Close()

	cellStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO table_cells (import_id, row_idx, col_idx, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Import{}, fmt.Errorf("prepare cell insert: %w", err)
	}
	defer cellStmt.Close()

	for r, row := range t {
		if _, err := rowStmt.ExecContext(ctx, imp.ID, r, len(row)); err != nil {
			return Import{}, fmt.Errorf("insert row %d: %w", r+1, err)
		}
		for c, v := range row {
			if _, err := cellStmt.ExecContext(ctx, imp.ID, r, c, v.Interface()); err != nil {
				return Import{}, fmt.Errorf("insert cell %d,%d: %w", r+1, c+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Import{}, fmt.Errorf("commit: %w", err)
	}

	Logger().Info("table saved",
		zap.String("id", imp.ID),
		zap.String("name", imp.Name),
		zap.Int("rows", imp.Rows))
	return imp, nil
}

// Load returns the Table saved under id.
func (s *Store) Load(ctx context.Context, id string) (csv.Table, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	table, err := s.loadRows(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_idx, col_idx, value FROM table_cells WHERE import_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r, c int
			raw  any
		)
		if err := rows.Scan(&r, &c, &raw); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if r < 0 || r >= len(table) || c < 0 || c >= len(table[r]) {
			return nil, fmt.Errorf("cell %d,%d outside table shape", r+1, c+1)
		}
		v, err := cellValue(raw)
		if err != nil {
			return nil, fmt.Errorf("cell %d,%d: %w", r+1, c+1, err)
		}
		table[r][c] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	return table, nil
}

// loadRows builds a Table of Null values shaped like the saved one.
func (s *Store) loadRows(ctx context.Context, id string) (csv.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT width FROM table_rows WHERE import_id = ? ORDER BY row_idx`, id)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var table csv.Table
	for rows.Next() {
		var width int
		if err := rows.Scan(&width); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		table = append(table, make(csv.Row, width))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	if table == nil {
		table = csv.Table{}
	}
	return table, nil
}

// cellValue maps a scanned SQLite value onto a csv.Value.
func cellValue(raw any) (csv.Value, error) {
	switch val := raw.(type) {
	case nil:
		return csv.Null(), nil
	case int64:
		return csv.Int(val), nil
	case float64:
		return csv.Float(val), nil
	case string:
		return csv.String(val), nil
	case []byte:
		return csv.String(string(val)), nil
	default:
		return csv.Value{}, fmt.Errorf("unexpected column type %T", raw)
	}
}

// Get returns the catalog entry for id.
func (s *Store) Get(ctx context.Context, id string) (Import, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, row_count, imported_at FROM imports WHERE id = ?`, id)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, fmt.Errorf("%s: %w", id, ErrImportNotFound)
	}
	if err != nil {
		return Import{}, fmt.Errorf("query import: %w", err)
	}
	return imp, nil
}

// List returns every import, newest first.
func (s *Store) List(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, row_count, imported_at FROM imports ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return imports, nil
}

// Delete removes the import and all of its rows and cells.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is a no-op after commit

	res, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrImportNotFound)
	}

	for _, stmt := range []string{
		`DELETE FROM table_cells WHERE import_id = ?`,
		`DELETE FROM table_rows WHERE import_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete table data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	Logger().Info("table deleted", zap.String("id", id))
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanImport(sc scanner) (Import, error) {
	var (
		imp Import
		ts  string
	)
	if err := sc.Scan(&imp.ID, &imp.Name, &imp.Rows, &ts); err != nil {
		return Import{}, err
	}
	t, err := time.Parse(timeFormat, ts)
	if err != nil {
		return Import{}, fmt.Errorf("parse imported_at %q: %w", ts, err)
	}
	imp.ImportedAt = t
	return imp, nil
}

// checkFinite rejects NaN and infinite floats, which SQLite cannot store
// faithfully.
func checkFinite(t csv.Table) error {
	for r, row := range t {
		for c, v := range row {
			if f, ok := v.Float(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				return &csv.ValueError{Row: r + 1, Column: c + 1, Err: csv.ErrNonFiniteFloat}
			}
		}
	}
	return nil
}
