/*
join.go - Stage 2: full outer join + numeric coercion

PURPOSE:
  Joins activity records against the rate sheet on License so that NO
  license value from either side is ever dropped, then applies the
  coercion policy and recomputes each row's total.

JOIN SEMANTICS (full outer join on License):
  - Activity rows come first, in input order. Each is paired with every
    rate row sharing its License; an activity row with no rate match keeps
    a zero rate. Rate-sheet licenses are assumed unique, so a match is
    normally 1:1 — duplicates multiply the pairing, faithfully, rather
    than being deduplicated.
  - Rate rows whose License matched no activity row are appended after, in
    rate-sheet order, with blank employee/date and zero hours.

COERCION POLICY (deliberate best effort):
  Rate and Hours cells that are absent or fail to parse become zero, never
  an error: the affected row must still reach the discrepancy report
  instead of aborting the run. Coercion failures are counted for logging.

ROUNDING:
  CalculatedTotal = (rate * hours).Round(2). shopspring's Round is round
  half away from zero, which for the non-negative values of this domain is
  round half up. Used consistently everywhere a total is produced.

SEE ALSO:
  - reconcile.go: consumes CalculatedTotal and OriginalTotal
*/
package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Join performs the full outer join of activity against rates on License
// and coerces the numeric fields. The second return value counts cells
// that failed coercion and were defaulted to zero.
func Join(activity *ActivitySet, rates []RateRecord) ([]JoinedRecord, int) {
	coerced := 0
	coerce := func(raw string) decimal.Decimal {
		d, ok := parseCell(raw)
		if !ok {
			coerced++
			return decimal.Zero
		}
		return d
	}

	var out []JoinedRecord
	matched := make([]bool, len(rates))

	for _, a := range activity.Records {
		hit := false
		for i, r := range rates {
			if r.License != a.License {
				continue
			}
			matched[i] = true
			hit = true
			out = append(out, newJoined(a, r.Rate, true, activity.HasTotal, coerce))
		}
		if !hit {
			// No rate for this license: retained with a zero rate, never
			// dropped.
			out = append(out, newJoined(a, "", true, activity.HasTotal, coerce))
		}
	}

	for i, r := range rates {
		if matched[i] {
			continue
		}
		// Rate-sheet license with no activity: retained with the activity
		// side blank.
		out = append(out, newJoined(ActivityRecord{License: r.License}, r.Rate, false, activity.HasTotal, coerce))
	}

	return out, coerced
}

func newJoined(a ActivityRecord, rateCell string, hasActivity, hasTotal bool, coerce func(string) decimal.Decimal) JoinedRecord {
	j := JoinedRecord{
		Employee:     a.Employee,
		License:      a.License,
		VerifiedDate: a.VerifiedDate,
		Rate:         coerce(rateCell),
		Hours:        coerce(a.Hours),
		HasActivity:  hasActivity,
	}
	j.CalculatedTotal = j.Rate.Mul(j.Hours).Round(2)
	// The working total starts at the recomputed value; the reconciler
	// confirms it stays there.
	j.Total = j.CalculatedTotal

	if hasTotal && hasActivity {
		if d, ok := parseCell(a.Total); ok {
			j.OriginalTotal = d
			j.OriginalTotalOK = true
		}
	}
	return j
}

// parseCell parses one numeric cell, trimming surrounding whitespace.
// Empty and unparseable cells report !ok; the caller decides the default.
func parseCell(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
