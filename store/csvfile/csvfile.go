/*
Package csvfile provides CSV-backed table sources and sinks.

PURPOSE:
  Reads a CSV file into a table.Table (first record is the header) and
  writes a table.Table out as CSV, replacing any previous content. Writes
  go through a temp file and a rename, so the destination only ever holds
  a complete table.

RAGGED ROWS:
  The reader sets FieldsPerRecord = -1: data rows shorter or longer than
  the header are accepted as-is. table.Table already reads missing cells
  as "", so short rows need no padding here.

SEE ALSO:
  - table: the dataset type and error sentinels
  - store/xlsxfile, store/sqlite: the other backends
*/
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp/payroll-recon/table"
)

// Source reads one CSV file as a table.
type Source struct {
	Path string
}

// NewSource creates a CSV source for the given path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Read loads the whole file. The first record becomes the column header.
func (s *Source) Read(_ context.Context) (*table.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", table.ErrSourceUnavailable, s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", table.ErrSourceUnavailable, s.Path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", table.ErrSchemaMismatch, s.Path)
	}

	t := table.New(records[0]...)
	for _, rec := range records[1:] {
		t.Append(rec...)
	}
	return t, nil
}

// Sink writes a table to one CSV file, replacing any existing content.
type Sink struct {
	Path string
}

// NewSink creates a CSV sink for the given path.
func NewSink(path string) *Sink {
	return &Sink{Path: path}
}

// Write replaces the destination file with the table. The table is written
// to a temporary file in the destination directory and renamed into place
// only once fully flushed, so a failed run never leaves a partial output
// file and the previous output survives the failure.
func (s *Sink) Write(_ context.Context, t *table.Table) error {
	f, err := os.CreateTemp(filepath.Dir(s.Path), ".recon-*.csv")
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once the rename has happened

	if err := writeAll(f, t); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	return nil
}

func writeAll(f *os.File, t *table.Table) error {
	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
