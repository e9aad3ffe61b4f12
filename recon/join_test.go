package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-recon/recon"
	"github.com/warp/payroll-recon/table"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func rateTable(rows ...[]string) *table.Table {
	t := table.New("License", "Rate")
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

// activityTable builds an activity sheet. Row shape with total:
// {Employee, License, Verified Date, Hours, Total}; without: first four.
func activityTable(withTotal bool, rows ...[]string) *table.Table {
	cols := []string{"Employee", "License", "Verified Date", "Hours"}
	if withTotal {
		cols = append(cols, "Total")
	}
	t := table.New(cols...)
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

func loadBoth(t *testing.T, rates, activity *table.Table) (*recon.ActivitySet, []recon.RateRecord) {
	t.Helper()
	rr, err := recon.LoadRates(rates)
	require.NoError(t, err)
	as, err := recon.LoadActivity(activity)
	require.NoError(t, err)
	return as, rr
}

func licenses(rows []recon.JoinedRecord) map[string]bool {
	seen := make(map[string]bool)
	for _, r := range rows {
		seen[r.License] = true
	}
	return seen
}

// =============================================================================
// OUTER JOIN TESTS
// =============================================================================

func TestJoin_MatchedRowCarriesRate(t *testing.T) {
	// GIVEN: One activity row whose license has a rate
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "50"}),
		activityTable(false, []string{"Alice", "RN", "2024-05-01", "10"}),
	)

	// WHEN: Joining
	rows, coerced := recon.Join(as, rr)

	// THEN: One row, rate attached, total recomputed
	require.Len(t, rows, 1)
	assert.Equal(t, 0, coerced)
	assert.True(t, rows[0].Rate.Equal(d("50")))
	assert.True(t, rows[0].Hours.Equal(d("10")))
	assert.True(t, rows[0].CalculatedTotal.Equal(d("500")))
	assert.True(t, rows[0].HasActivity)
}

func TestJoin_PreservesEveryLicenseFromBothSides(t *testing.T) {
	// GIVEN: Licenses that exist only on one side each
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "50"}, []string{"LPN", "30"}),
		activityTable(false,
			[]string{"Alice", "RN", "2024-05-01", "10"},
			[]string{"Bob", "CNA", "2024-05-01", "8"},
		),
	)

	// WHEN: Joining
	rows, _ := recon.Join(as, rr)

	// THEN: No license from either side is lost
	seen := licenses(rows)
	assert.True(t, seen["RN"])
	assert.True(t, seen["CNA"], "activity-only license retained")
	assert.True(t, seen["LPN"], "rate-only license retained")
	assert.Len(t, rows, 3)
}

func TestJoin_ActivityWithoutRate_DefaultsToZero(t *testing.T) {
	// Scenario: activity license missing from the rate sheet.
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "50"}),
		activityTable(false, []string{"Bob", "CNA", "2024-05-02", "8"}),
	)

	rows, coerced := recon.Join(as, rr)

	require.Len(t, rows, 2) // the CNA activity row + the unmatched RN rate row
	var cna *recon.JoinedRecord
	for i := range rows {
		if rows[i].License == "CNA" {
			cna = &rows[i]
		}
	}
	require.NotNil(t, cna, "row retained, not dropped")
	assert.True(t, cna.Rate.IsZero())
	assert.True(t, cna.CalculatedTotal.IsZero())
	assert.Equal(t, "Bob", cna.Employee)
	assert.Greater(t, coerced, 0, "missing rate counts as a coercion")
}

func TestJoin_RateOnlyRow_HasBlankActivitySide(t *testing.T) {
	as, rr := loadBoth(t,
		rateTable([]string{"LPN", "30"}),
		activityTable(false),
	)

	rows, _ := recon.Join(as, rr)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].HasActivity)
	assert.Equal(t, "", rows[0].Employee)
	assert.Equal(t, "", rows[0].VerifiedDate)
	assert.True(t, rows[0].Hours.IsZero())
	assert.True(t, rows[0].CalculatedTotal.IsZero())
}

func TestJoin_UnparseableCellsCoerceToZero(t *testing.T) {
	// GIVEN: Junk in both numeric columns
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "fifty"}),
		activityTable(false, []string{"Alice", "RN", "2024-05-01", "n/a"}),
	)

	rows, coerced := recon.Join(as, rr)

	require.Len(t, rows, 1)
	assert.Equal(t, 2, coerced)
	assert.True(t, rows[0].Rate.IsZero())
	assert.True(t, rows[0].Hours.IsZero())
	assert.True(t, rows[0].CalculatedTotal.IsZero())
}

func TestJoin_DuplicateRateLicense_MultipliesMatches(t *testing.T) {
	// License uniqueness in the rate sheet is assumed, not enforced: a
	// duplicate pairs the activity row once per rate row.
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "50"}, []string{"RN", "55"}),
		activityTable(false, []string{"Alice", "RN", "2024-05-01", "10"}),
	)

	rows, _ := recon.Join(as, rr)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CalculatedTotal.Equal(d("500")))
	assert.True(t, rows[1].CalculatedTotal.Equal(d("550")))
}

func TestJoin_RoundsHalfAwayFromZero(t *testing.T) {
	as, rr := loadBoth(t,
		rateTable([]string{"RN", "33.335"}),
		activityTable(false, []string{"Alice", "RN", "2024-05-01", "1"}),
	)

	rows, _ := recon.Join(as, rr)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].CalculatedTotal.Equal(d("33.34")),
		"got %s", rows[0].CalculatedTotal)
}
