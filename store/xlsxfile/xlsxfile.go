/*
Package xlsxfile provides XLSX-backed table sources and sinks.

PURPOSE:
  Reads the first worksheet of an .xlsx workbook into a table.Table
  (first row is the header) and writes a table.Table out as a single
  worksheet, replacing any previous file.

LIBRARY: excelize
  GetRows returns every cell as a string, which matches the raw-cell
  contract of table.Table; numeric interpretation stays downstream.

SEE ALSO:
  - table: the dataset type and error sentinels
  - store/csvfile, store/sqlite: the other backends
*/
package xlsxfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll-recon/table"
)

const defaultSheet = "Sheet1"

// Source reads the first worksheet of one workbook as a table.
type Source struct {
	Path string
}

// NewSource creates an XLSX source for the given path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Read loads the whole first sheet. The first row becomes the header.
func (s *Source) Read(_ context.Context) (*table.Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", table.ErrSourceUnavailable, s.Path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: %s has no worksheet", table.ErrSourceUnavailable, s.Path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", table.ErrSourceUnavailable, s.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s!%s has no header row", table.ErrSchemaMismatch, s.Path, sheet)
	}

	t := table.New(rows[0]...)
	for _, row := range rows[1:] {
		t.Append(row...)
	}
	return t, nil
}

// Sink writes a table as a one-sheet workbook, replacing any existing file.
// The workbook is saved to a temp file and renamed into place, so a failed
// save never leaves a partial output file behind.
type Sink struct {
	Path string
}

// NewSink creates an XLSX sink for the given path.
func NewSink(path string) *Sink {
	return &Sink{Path: path}
}

func (s *Sink) Write(_ context.Context, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	// The fresh workbook already has Sheet1; fill it row by row.
	if err := writeRow(f, 1, t.Columns); err != nil {
		return fmt.Errorf("%w: %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	for i, row := range t.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return fmt.Errorf("%w: %s: %v", table.ErrWriteFailed, s.Path, err)
		}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.Path), ".recon-*.xlsx")
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	tmp := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmp) // no-op once the rename has happened

	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("%w: save %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", table.ErrWriteFailed, s.Path, err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(defaultSheet, cell, &values)
}
