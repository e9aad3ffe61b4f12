/*
Package sqlite provides SQLite-backed table sources and sinks.

PURPOSE:
  Treats a table inside a SQLite database file as one tabular dataset:
  Source reads it whole into a table.Table, Sink drops and recreates the
  destination table from one. The database is a source *format*, like CSV
  or XLSX; the pipeline keeps no state in it across runs.

SCHEMA:
  All columns are stored as TEXT. Cell meaning (numeric coercion with
  zero-defaulting) is decided by the recon package, so round-tripping raw
  strings is exactly the contract table.Table already has.

OVERWRITE SEMANTICS:
  Sink.Write runs DROP TABLE IF EXISTS + CREATE TABLE + inserts inside a
  single transaction: either the destination table is fully replaced, or
  it is untouched.

USAGE:
  src := sqlite.NewSource("./payroll.db", "activity")
  t, err := src.Read(ctx)

SEE ALSO:
  - table: the dataset type and error sentinels
  - store/csvfile, store/xlsxfile: the other backends
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-recon/table"
)

// Source reads one table from a SQLite database file.
type Source struct {
	Path  string
	Table string
}

// NewSource creates a SQLite source for the given database path and table.
func NewSource(path, tableName string) *Source {
	return &Source{Path: path, Table: tableName}
}

// Read loads the whole table. Result-set column names become the header;
// NULL cells read as "".
//
// The DSN needs the file: prefix: the driver only honors mode=ro on URI
// paths, and a plain path would open read-write and create a missing
// database file as a side effect of reading.
func (s *Source) Read(ctx context.Context) (*table.Table, error) {
	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", table.ErrSourceUnavailable, s.Path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(s.Table)))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s.%s: %v", table.ErrSourceUnavailable, s.Path, s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns of %s.%s: %v", table.ErrSourceUnavailable, s.Path, s.Table, err)
	}

	t := table.New(cols...)
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		scan := make([]interface{}, len(cols))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("%w: scan %s.%s: %v", table.ErrSourceUnavailable, s.Path, s.Table, err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		t.Append(row...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s.%s: %v", table.ErrSourceUnavailable, s.Path, s.Table, err)
	}
	return t, nil
}

// Sink replaces one table in a SQLite database file.
type Sink struct {
	Path  string
	Table string
}

// NewSink creates a SQLite sink for the given database path and table.
func NewSink(path, tableName string) *Sink {
	return &Sink{Path: path, Table: tableName}
}

// Write drops and recreates the destination table with TEXT columns and
// inserts every row, all inside one transaction.
func (s *Sink) Write(ctx context.Context, t *table.Table) error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(s.Table))); err != nil {
		return fmt.Errorf("%w: drop %s.%s: %v", table.ErrWriteFailed, s.Path, s.Table, err)
	}

	colDefs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		colDefs[i] = quoteIdent(c) + " TEXT"
	}
	create := fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(s.Table), strings.Join(colDefs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("%w: create %s.%s: %v", table.ErrWriteFailed, s.Path, s.Table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	insert := fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, quoteIdent(s.Table), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("%w: prepare %s.%s: %v", table.ErrWriteFailed, s.Path, s.Table, err)
	}
	defer stmt.Close()

	for r := range t.Rows {
		args := make([]interface{}, len(t.Columns))
		for i := range t.Columns {
			args[i] = cellAt(t, r, i)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%w: insert %s.%s: %v", table.ErrWriteFailed, s.Path, s.Table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s.%s: %v", table.ErrWriteFailed, s.Path, s.Table, err)
	}
	return nil
}

// cellAt reads by position so duplicate or padded headers cannot alias.
func cellAt(t *table.Table, row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes. Column
// names like "Verified Date" contain spaces, so quoting is not optional.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
