package table_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-recon/table"
)

// =============================================================================
// SCHEMA TESTS
// =============================================================================

func TestTable_ColumnIndex_TrimsHeaderWhitespace(t *testing.T) {
	tbl := table.New(" License ", "Rate")

	i, ok := tbl.ColumnIndex("License")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = tbl.ColumnIndex("license")
	assert.False(t, ok, "header matching is case-sensitive")
}

func TestTable_Require_ReportsAllMissingColumns(t *testing.T) {
	tbl := table.New("Employee", "Hours")

	err := tbl.Require("Employee", "License", "Verified Date", "Hours")
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrSchemaMismatch))

	var mc *table.MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"License", "Verified Date"}, mc.Missing)
}

func TestTable_Require_AllPresent(t *testing.T) {
	tbl := table.New("License", "Rate")
	assert.NoError(t, tbl.Require("License", "Rate"))
}

// =============================================================================
// CELL ACCESS TESTS
// =============================================================================

func TestTable_Cell_ShortRowReadsEmpty(t *testing.T) {
	// GIVEN: A row with fewer cells than the header
	tbl := table.New("Employee", "License", "Hours")
	tbl.Append("Alice")

	// THEN: Missing cells read as "", never out of range
	assert.Equal(t, "Alice", tbl.Cell(0, "Employee"))
	assert.Equal(t, "", tbl.Cell(0, "License"))
	assert.Equal(t, "", tbl.Cell(0, "Hours"))
}

func TestTable_Cell_AbsentColumnReadsEmpty(t *testing.T) {
	tbl := table.New("Employee")
	tbl.Append("Alice")

	assert.Equal(t, "", tbl.Cell(0, "Total"))
}

// =============================================================================
// MEMORY BACKEND TESTS
// =============================================================================

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := table.NewMemory(table.New("License", "Rate"))
	src.Table.Append("RN", "50")

	got, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	out := &table.Memory{}
	require.NoError(t, out.Write(ctx, got))
	assert.Equal(t, got, out.Table)
}

func TestMemory_NilTableIsSourceUnavailable(t *testing.T) {
	src := &table.Memory{}
	_, err := src.Read(context.Background())
	assert.True(t, errors.Is(err, table.ErrSourceUnavailable))
}
