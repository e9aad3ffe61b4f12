/*
Package recon implements the payroll rate-reconciliation pipeline.

PURPOSE:
  Four stages run in order over in-memory tables:

    Loader     -> typed records from the rate sheet and the activity sheet
    Joiner     -> full outer join on License, numeric coercion, recomputed totals
    Reconciler -> flag rows whose stored total disagrees with the recomputed one
    Aggregator -> group by Verified Date, append one grand-total row

KEY CONCEPTS IN THIS FILE (types.go):
  - RateRecord/ActivityRecord: raw rows straight off the source tables;
    cells stay strings until the joiner applies the coercion policy
  - JoinedRecord: one row of the outer join with coerced numerics
  - GroupedRecord: one output row (a date group, or the grand total)

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for rates, hours, and totals; never float
  2. Best effort on cells: an unparseable Rate or Hours becomes zero so the
     row still surfaces in the report instead of aborting the run
  3. Exactness on reconciliation: totals compare with no epsilon; any
     cent-level difference is a discrepancy

SEE ALSO:
  - loader.go: schema checks, Unassigned filtering
  - join.go: outer-join and coercion semantics
  - reconcile.go: discrepancy detection and reporting
  - aggregate.go: grouping and the grand-total row
  - pipeline.go: orchestration and output rendering
*/
package recon

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN NAMES - Shared by loader and output rendering
// =============================================================================

const (
	ColEmployee     = "Employee"
	ColLicense      = "License"
	ColVerifiedDate = "Verified Date"
	ColHours        = "Hours"
	ColRate         = "Rate"
	ColTotal        = "Total"
)

// UnassignedEmployee is the sentinel marking activity rows that belong to
// no employee. Such rows are dropped before joining.
const UnassignedEmployee = "Unassigned"

// GrandTotalLabel is the Verified Date value of the synthesized summary row.
const GrandTotalLabel = "Grand Total"

// =============================================================================
// SOURCE RECORDS - Raw cells, one per input row
// =============================================================================

// RateRecord is one row of the rate sheet. Rate stays the raw cell; the
// joiner coerces it.
type RateRecord struct {
	License string
	Rate    string
}

// ActivityRecord is one row of the payroll activity sheet, projected to the
// columns the pipeline uses. Hours and Total stay raw cells.
type ActivityRecord struct {
	Employee     string
	License      string
	VerifiedDate string
	Hours        string
	Total        string
}

// ActivitySet is the loaded activity sheet. HasTotal records whether the
// source carried a Total column at all: reconciliation only runs when it
// did, and an empty cell in a present column is not the same as an absent
// column.
type ActivitySet struct {
	Records  []ActivityRecord
	HasTotal bool
}

// =============================================================================
// JOINED RECORD - One outer-join row with coerced numerics
// =============================================================================

// JoinedRecord is one row of the outer join of activity against rates.
// Rate and Hours are already coerced (zero when absent or unparseable).
type JoinedRecord struct {
	Employee     string
	License      string
	VerifiedDate string

	Rate  decimal.Decimal
	Hours decimal.Decimal

	// CalculatedTotal is always round(Rate*Hours, 2), the half-away-from-zero
	// rounding of shopspring's Round.
	CalculatedTotal decimal.Decimal

	// OriginalTotal is the stored total as found in the source, valid only
	// when OriginalTotalOK. A rate-only row, or an activity row with an
	// empty or unparseable Total cell, has OriginalTotalOK=false.
	OriginalTotal   decimal.Decimal
	OriginalTotalOK bool

	// HasActivity is false for rate-sheet rows with no matching activity.
	HasActivity bool

	// Total is the working total used downstream. The reconciler sets it to
	// CalculatedTotal unconditionally.
	Total decimal.Decimal

	// Discrepant is set by the reconciler when the stored total disagrees
	// with CalculatedTotal.
	Discrepant bool
}

// =============================================================================
// GROUPED RECORD - One output row
// =============================================================================

// GroupedRecord is one row of the final table: either a Verified Date group
// or the single grand-total row.
type GroupedRecord struct {
	VerifiedDate string
	Employee     string
	License      string
	Rate         decimal.Decimal
	Hours        decimal.Decimal
	Total        decimal.Decimal

	// GrandTotal marks the synthesized summary row; its Employee, License
	// and Rate render blank.
	GrandTotal bool
}
