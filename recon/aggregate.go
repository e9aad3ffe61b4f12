/*
aggregate.go - Stage 4: grouping and the grand-total row

PURPOSE:
  Groups reconciled rows by Verified Date and synthesizes the single
  grand-total row. The output always has exactly one row per distinct
  date plus the grand total.

GROUPING POLICY:
  - String equality on Verified Date; the empty date is a group of its own
    (rate-only join rows land there).
  - Groups appear in first-appearance order of their date, which is stable
    for a given input.
  - Employee, License and Rate come from the FIRST row encountered in the
    group ("first wins"); the source behavior evidently assumed one
    employee per date but never enforced it, and this stage preserves that
    rather than guessing a stricter rule. Rate is a per-row attribute, so
    it is neither summed nor averaged.
  - Hours and Total are arithmetic sums across the group.

SEE ALSO:
  - pipeline.go: renders these rows into the output table
*/
package recon

// Aggregate groups rows by Verified Date and appends the grand-total row.
// The result is never empty: even zero input rows produce the grand total.
func Aggregate(rows []JoinedRecord) []GroupedRecord {
	var groups []GroupedRecord
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.VerifiedDate]
		if !ok {
			index[r.VerifiedDate] = len(groups)
			groups = append(groups, GroupedRecord{
				VerifiedDate: r.VerifiedDate,
				Employee:     r.Employee,
				License:      r.License,
				Rate:         r.Rate,
				Hours:        r.Hours,
				Total:        r.Total,
			})
			continue
		}
		groups[i].Hours = groups[i].Hours.Add(r.Hours)
		groups[i].Total = groups[i].Total.Add(r.Total)
	}

	grand := GroupedRecord{VerifiedDate: GrandTotalLabel, GrandTotal: true}
	for _, g := range groups {
		grand.Hours = grand.Hours.Add(g.Hours)
		grand.Total = grand.Total.Add(g.Total)
	}
	return append(groups, grand)
}
