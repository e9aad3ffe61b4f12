/*
Package table provides the in-memory tabular dataset shared by every
pipeline stage.

PURPOSE:
  A Table is an ordered header plus rows of raw string cells. It is the
  only currency between source backends (CSV, XLSX, SQLite) and the
  reconciliation stages: backends produce and consume Tables, the recon
  package interprets them.

KEY CONCEPTS IN THIS FILE (table.go):
  - Table: named columns + rows; cells stay strings, numeric meaning is
    decided downstream
  - Reader/Writer: the contracts every source backend implements
  - Memory: in-process Reader/Writer for tests and embedding

DESIGN PRINCIPLES:
  1. Whole-table reads: no streaming, each stage consumes its input in full
  2. Raw cells: coercion policy (default-to-zero) lives in recon, not here
  3. Ragged tolerance: short rows read as empty cells, never out-of-range

SEE ALSO:
  - errors.go: Error taxonomy for sources, schemas, and sinks
  - store/csvfile, store/xlsxfile, store/sqlite: Reader/Writer backends
  - recon: the stages that interpret Tables
*/
package table

import (
	"context"
	"strings"
)

// =============================================================================
// TABLE - Named columns, rows of string cells
// =============================================================================

// Table is an ordered set of named columns and the rows beneath them.
// Rows may be shorter than the header; missing cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. The row is stored as given; it is not padded or
// truncated to the header width.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex finds a column by name. Header cells are compared after
// trimming surrounding whitespace; the match is otherwise exact and
// case-sensitive.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Require verifies that every named column is present. All missing columns
// are reported together in a single *MissingColumnsError so the caller sees
// the full schema gap at once.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// Cell returns the value at (row, column), or "" when the column is absent
// or the row is shorter than the column's position.
func (t *Table) Cell(row int, column string) string {
	i, ok := t.ColumnIndex(column)
	if !ok {
		return ""
	}
	if row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// =============================================================================
// READER / WRITER - Source and sink contracts
// =============================================================================

// Reader produces a whole table from some external source. Implementations
// wrap ErrSourceUnavailable when the source cannot be opened or read and
// ErrSchemaMismatch when it holds no header.
type Reader interface {
	Read(ctx context.Context) (*Table, error)
}

// Writer replaces the contents of some external destination with a table.
// No append semantics: a second Write overwrites the first. Implementations
// wrap ErrWriteFailed on any failure.
type Writer interface {
	Write(ctx context.Context, t *Table) error
}

// =============================================================================
// MEMORY - In-memory Reader/Writer (for testing/embedding)
// =============================================================================

// Memory holds a table in process. Read returns the held table; Write
// replaces it. A Memory with a nil table reads as source-unavailable,
// mirroring a missing file.
type Memory struct {
	Table *Table
}

// NewMemory creates a Memory holding the given table.
func NewMemory(t *Table) *Memory {
	return &Memory{Table: t}
}

func (m *Memory) Read(_ context.Context) (*Table, error) {
	if m.Table == nil {
		return nil, ErrSourceUnavailable
	}
	return m.Table, nil
}

func (m *Memory) Write(_ context.Context, t *Table) error {
	m.Table = t
	return nil
}
