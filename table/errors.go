/*
errors.go - Error taxonomy for tabular sources and sinks

PURPOSE:
  All fatal error categories of the pipeline's outer edges in one place.
  Source backends wrap these sentinels; the recon stages and the CLI match
  them with errors.Is.

ERROR CATEGORIES:
  1. Source errors - a required input cannot be opened or read
  2. Schema errors - a required column is absent from a loaded table
  3. Sink errors   - the destination cannot be written

Value-level problems (a cell that fails numeric parsing) are deliberately
NOT errors: the recon package recovers them inline by defaulting to zero.

SEE ALSO:
  - table.go: Require, which returns *MissingColumnsError
  - recon: the recovery policy for cell-level coercion
*/
package table

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrSourceUnavailable is returned when an input source cannot be
	// opened or read. Fatal: the run aborts with no output written.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch is returned when a loaded table is missing a
	// required column. Fatal: the run aborts with no output written.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrWriteFailed is returned when the output destination cannot be
	// created or written.
	ErrWriteFailed = errors.New("output write failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingColumnsError lists every required column absent from a table.
type MissingColumnsError struct {
	Source  string // optional: which source the table came from
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrSchemaMismatch
}
