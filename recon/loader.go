/*
loader.go - Stage 1: typed records from raw tables

PURPOSE:
  Validates the schemas of the two input tables and projects them into
  RateRecord / ActivityRecord sets. Activity rows for the Unassigned
  sentinel are dropped here, before the join ever sees them.

SCHEMA CONTRACT:
  Rate sheet:      {License, Rate}
  Activity sheet:  {Employee, License, Verified Date, Hours} + optional Total

  A missing required column is fatal (table.ErrSchemaMismatch); nothing is
  coerced or defaulted at this stage.

SEE ALSO:
  - table: Require and the error taxonomy
  - join.go: the stage that consumes these records
*/
package recon

import (
	"errors"

	"github.com/warp/payroll-recon/table"
)

// LoadRates projects a rate-sheet table into records. License values are
// assumed unique in the source; duplicates are carried through, not
// rejected.
func LoadRates(t *table.Table) ([]RateRecord, error) {
	if err := t.Require(ColLicense, ColRate); err != nil {
		return nil, named(err, "rate sheet")
	}

	records := make([]RateRecord, 0, t.Len())
	for i := range t.Rows {
		records = append(records, RateRecord{
			License: t.Cell(i, ColLicense),
			Rate:    t.Cell(i, ColRate),
		})
	}
	return records, nil
}

// LoadActivity projects a payroll activity table into records, dropping
// rows whose Employee is the Unassigned sentinel. The optional Total
// column's presence is recorded on the set.
func LoadActivity(t *table.Table) (*ActivitySet, error) {
	if err := t.Require(ColEmployee, ColLicense, ColVerifiedDate, ColHours); err != nil {
		return nil, named(err, "activity sheet")
	}

	set := &ActivitySet{HasTotal: t.HasColumn(ColTotal)}
	for i := range t.Rows {
		if t.Cell(i, ColEmployee) == UnassignedEmployee {
			continue
		}
		set.Records = append(set.Records, ActivityRecord{
			Employee:     t.Cell(i, ColEmployee),
			License:      t.Cell(i, ColLicense),
			VerifiedDate: t.Cell(i, ColVerifiedDate),
			Hours:        t.Cell(i, ColHours),
			Total:        t.Cell(i, ColTotal),
		})
	}
	return set, nil
}

// named tags a schema error with which source it came from.
func named(err error, source string) error {
	var mc *table.MissingColumnsError
	if errors.As(err, &mc) {
		mc.Source = source
	}
	return err
}
