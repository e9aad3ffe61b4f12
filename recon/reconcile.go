/*
reconcile.go - Stage 3: discrepancy detection

PURPOSE:
  Compares each row's stored total against the recomputed one and collects
  the disagreements. Discrepancies are a reporting condition, not an
  error: the pipeline always runs to completion and the report is a side
  output.

EQUALITY:
  Exact equality on the rounded value, no epsilon. Any cent-level
  difference must surface. A stored total that is missing or unparseable
  also counts as a discrepancy: it cannot equal the recomputed value.

AFTERWARDS:
  Every row's working Total is the recomputed CalculatedTotal, whether or
  not it was discrepant. Aggregation never sees the stored totals.

SEE ALSO:
  - aggregate.go: consumes the reconciled rows
*/
package recon

import (
	"github.com/shopspring/decimal"
)

// Discrepancy is one row whose stored total disagrees with the recomputed
// total.
type Discrepancy struct {
	Employee     string
	License      string
	VerifiedDate string
	Calculated   decimal.Decimal

	// Stored is the original total, valid only when StoredOK; a missing or
	// unparseable stored total is still a discrepancy.
	Stored   decimal.Decimal
	StoredOK bool
}

// Report is the side output of reconciliation. Checked is false when the
// activity source had no Total column, in which case nothing was compared.
type Report struct {
	Checked       bool
	Discrepancies []Discrepancy
}

// HasDiscrepancies reports whether any row disagreed.
func (r Report) HasDiscrepancies() bool {
	return len(r.Discrepancies) > 0
}

// Reconcile checks every row against its stored total (only when the
// source carried one) and rewrites each row's working Total to the
// recomputed value. Rows are updated in place.
func Reconcile(rows []JoinedRecord, hasTotal bool) Report {
	report := Report{Checked: hasTotal}

	for i := range rows {
		r := &rows[i]
		if hasTotal {
			r.Discrepant = !r.OriginalTotalOK || !r.CalculatedTotal.Equal(r.OriginalTotal)
			if r.Discrepant {
				report.Discrepancies = append(report.Discrepancies, Discrepancy{
					Employee:     r.Employee,
					License:      r.License,
					VerifiedDate: r.VerifiedDate,
					Calculated:   r.CalculatedTotal,
					Stored:       r.OriginalTotal,
					StoredOK:     r.OriginalTotalOK,
				})
			}
		}
		// Recomputed value wins unconditionally.
		r.Total = r.CalculatedTotal
	}
	return report
}
