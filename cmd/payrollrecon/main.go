/*
main.go - payrollrecon command-line entry point

PURPOSE:
  Runs the payroll rate-reconciliation pipeline from the command line and
  answers one-off rate lookups.

COMMANDS:
  run     --rates <path> --activity <path> --out <path>
          Reconcile the activity sheet against the rate sheet and write
          the grouped output table. The discrepancy report goes to stderr.

  lookup  --rates <path> <license>
          Print the rate for one license type.

SOURCE FORMATS:
  Chosen by file extension:
    .csv                  CSV, first record is the header
    .xlsx, .xlsm          first worksheet, first row is the header
    .db, .sqlite(3)       a table inside a SQLite file; select it with a
                          "path#table" suffix (defaults: rates, activity,
                          and reconciliation for the destination)

EXAMPLES:
  payrollrecon run --rates rates.xlsx --activity may-2024.xlsx --out out.xlsx
  payrollrecon run --rates rates.csv --activity payroll.db#activity --out out.csv
  payrollrecon lookup --rates rates.csv RN

EXIT CODES:
  0 success (discrepancies alone never fail a run), 1 any fatal error.

ENVIRONMENT:
  No environment variables. All config via flags.

SEE ALSO:
  - recon/pipeline.go: the stages behind the run command
  - store/csvfile, store/xlsxfile, store/sqlite: the backends
*/
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warp/payroll-recon/recon"
	"github.com/warp/payroll-recon/store/csvfile"
	"github.com/warp/payroll-recon/store/sqlite"
	"github.com/warp/payroll-recon/store/xlsxfile"
	"github.com/warp/payroll-recon/table"
)

func main() {
	root := &cobra.Command{
		Use:           "payrollrecon",
		Short:         "Reconcile payroll activity against a license rate sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), lookupCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var ratesPath, activityPath, outPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reconciliation pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rates, err := openSource(ratesPath, "rates")
			if err != nil {
				return err
			}
			activity, err := openSource(activityPath, "activity")
			if err != nil {
				return err
			}
			out, err := openSink(outPath, "reconciliation")
			if err != nil {
				return err
			}

			p := &recon.Pipeline{
				Rates:    rates,
				Activity: activity,
				Out:      out,
				Log:      log.New(os.Stderr, "", log.LstdFlags),
			}
			result, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %d rows (%d date groups + grand total) to %s\n",
				result.Output.Len(), result.Groups, outPath)
			if result.Report.Checked && result.Report.HasDiscrepancies() {
				fmt.Printf("%d discrepancies reported; totals were recomputed\n",
					len(result.Report.Discrepancies))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ratesPath, "rates", "", "rate sheet source (required)")
	cmd.Flags().StringVar(&activityPath, "activity", "", "payroll activity source (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output destination (required)")
	cmd.MarkFlagRequired("rates")
	cmd.MarkFlagRequired("activity")
	cmd.MarkFlagRequired("out")
	return cmd
}

func lookupCmd() *cobra.Command {
	var ratesPath string

	cmd := &cobra.Command{
		Use:   "lookup <license>",
		Short: "Look up the rate for a license type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openSource(ratesPath, "rates")
			if err != nil {
				return err
			}
			t, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}
			rates, err := recon.LoadRates(t)
			if err != nil {
				return err
			}

			rate, ok := recon.LookupRate(rates, args[0])
			if !ok {
				return fmt.Errorf("no rate found for license %q", args[0])
			}
			fmt.Printf("The rate for %s is %s.\n", args[0], rate)
			return nil
		},
	}

	cmd.Flags().StringVar(&ratesPath, "rates", "", "rate sheet source (required)")
	cmd.MarkFlagRequired("rates")
	return cmd
}

// openSource picks a backend by extension. SQLite paths may carry a
// "#table" suffix; defaultTable applies when they don't.
func openSource(spec, defaultTable string) (table.Reader, error) {
	path, tableName := splitSQLiteSpec(spec, defaultTable)
	switch ext(path) {
	case ".csv":
		return csvfile.NewSource(path), nil
	case ".xlsx", ".xlsm":
		return xlsxfile.NewSource(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.NewSource(path, tableName), nil
	default:
		return nil, fmt.Errorf("unsupported source format: %s", spec)
	}
}

func openSink(spec, defaultTable string) (table.Writer, error) {
	path, tableName := splitSQLiteSpec(spec, defaultTable)
	switch ext(path) {
	case ".csv":
		return csvfile.NewSink(path), nil
	case ".xlsx", ".xlsm":
		return xlsxfile.NewSink(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.NewSink(path, tableName), nil
	default:
		return nil, fmt.Errorf("unsupported destination format: %s", spec)
	}
}

func splitSQLiteSpec(spec, defaultTable string) (path, tableName string) {
	if i := strings.LastIndex(spec, "#"); i >= 0 {
		return spec[:i], spec[i+1:]
	}
	return spec, defaultTable
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
