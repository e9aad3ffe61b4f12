package csvfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-recon/store/csvfile"
	"github.com/warp/payroll-recon/table"
)

func TestCSV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")

	in := table.New("Verified Date", "Employee", "Total")
	in.Append("2024-05-01", "Alice", "500")
	in.Append("Grand Total", "", "500")

	require.NoError(t, csvfile.NewSink(path).Write(ctx, in))

	got, err := csvfile.NewSource(path).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.Columns, got.Columns)
	assert.Equal(t, in.Rows, got.Rows)
}

func TestCSV_WriteOverwritesPreviousContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	sink := csvfile.NewSink(path)

	first := table.New("A")
	first.Append("1")
	first.Append("2")
	require.NoError(t, sink.Write(ctx, first))

	second := table.New("A")
	second.Append("3")
	require.NoError(t, sink.Write(ctx, second))

	got, err := csvfile.NewSource(path).Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "3", got.Cell(0, "A"))
}

func TestCSV_FailedWriteLeavesNoPartialOutput(t *testing.T) {
	// GIVEN: A destination that cannot be renamed over (it is a directory)
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.csv")
	require.NoError(t, os.Mkdir(dest, 0o755))

	tbl := table.New("A")
	tbl.Append("1")

	// WHEN: Writing
	err := csvfile.NewSink(dest).Write(context.Background(), tbl)

	// THEN: Failed, and neither a partial output nor a stray temp file remains
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrWriteFailed))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestCSV_SuccessfulWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	tbl := table.New("A")
	tbl.Append("1")

	require.NoError(t, csvfile.NewSink(filepath.Join(dir, "out.csv")).Write(context.Background(), tbl))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestCSV_MissingFileIsSourceUnavailable(t *testing.T) {
	_, err := csvfile.NewSource(filepath.Join(t.TempDir(), "nope.csv")).Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrSourceUnavailable))
}

func TestCSV_EmptyFileIsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := csvfile.NewSource(path).Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrSchemaMismatch))
}

func TestCSV_RaggedRowsReadAsEmptyCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("Employee,License,Hours\nAlice,RN\n"), 0o644))

	got, err := csvfile.NewSource(path).Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Alice", got.Cell(0, "Employee"))
	assert.Equal(t, "", got.Cell(0, "Hours"))
}
