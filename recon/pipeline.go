/*
pipeline.go - Orchestration: read, reconcile, write

PURPOSE:
  Wires the four stages together over two table Readers and one Writer.
  One call to Run is one complete batch: fully synchronous, no retries,
  no state kept between runs.

ALL-OR-NOTHING:
  Any source, schema, or load failure aborts before the output writer is
  ever touched, so a run either produces the complete output table or no
  output at all. Discrepancies and cell coercions never abort; they are
  logged and carried in the Result.

OUTPUT SHAPE:
  {Verified Date, Employee, License, Rate, Hours, Total}. The grand-total
  row renders blank Employee/License/Rate cells. Rendering is plain
  decimal formatting, so identical inputs produce byte-identical output.

SEE ALSO:
  - table: Reader/Writer contracts
  - store/csvfile, store/xlsxfile, store/sqlite: concrete backends
*/
package recon

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/warp/payroll-recon/table"
)

// Pipeline binds the two input sources and the output destination.
type Pipeline struct {
	Rates    table.Reader
	Activity table.Reader
	Out      table.Writer

	// Log receives the discrepancy report and coercion notices. Defaults
	// to stderr when nil.
	Log *log.Logger
}

// Result summarizes one completed run.
type Result struct {
	Report  Report
	Joined  int // rows after the outer join
	Groups  int // distinct Verified Date values
	Coerced int // cells defaulted to zero
	Output  *table.Table
}

// Run executes one batch: load both sources, join, reconcile, aggregate,
// write. Returns without writing on any load or schema failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := p.Log
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	rateTable, err := p.Rates.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rate sheet: %w", err)
	}
	activityTable, err := p.Activity.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load activity sheet: %w", err)
	}

	rates, err := LoadRates(rateTable)
	if err != nil {
		return nil, err
	}
	activity, err := LoadActivity(activityTable)
	if err != nil {
		return nil, err
	}

	joined, coerced := Join(activity, rates)
	if coerced > 0 {
		logger.Printf("coerced %d missing or non-numeric cells to zero", coerced)
	}

	report := Reconcile(joined, activity.HasTotal)
	logReport(logger, report)

	grouped := Aggregate(joined)
	out := OutputTable(grouped)

	if err := p.Out.Write(ctx, out); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	return &Result{
		Report:  report,
		Joined:  len(joined),
		Groups:  len(grouped) - 1, // minus the grand-total row
		Coerced: coerced,
		Output:  out,
	}, nil
}

// OutputTable renders grouped rows into the final table shape.
func OutputTable(groups []GroupedRecord) *table.Table {
	t := table.New(ColVerifiedDate, ColEmployee, ColLicense, ColRate, ColHours, ColTotal)
	for _, g := range groups {
		if g.GrandTotal {
			t.Append(g.VerifiedDate, "", "", "", g.Hours.String(), g.Total.String())
			continue
		}
		t.Append(g.VerifiedDate, g.Employee, g.License, g.Rate.String(), g.Hours.String(), g.Total.String())
	}
	return t
}

func logReport(logger *log.Logger, report Report) {
	if !report.Checked || !report.HasDiscrepancies() {
		return
	}
	logger.Printf("discrepancies found: %d", len(report.Discrepancies))
	for _, d := range report.Discrepancies {
		stored := "(none)"
		if d.StoredOK {
			stored = d.Stored.String()
		}
		logger.Printf("  employee=%q license=%q date=%q calculated=%s stored=%s",
			d.Employee, d.License, d.VerifiedDate, d.Calculated.String(), stored)
	}
}
