package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year      string
	portfolio string
	slab      float64
	csvFile   string
	csv112A   string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "fiscal-year capital gains report" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-fy <year>] [-p <portfolio>] [-slab <percent>] [-csv <file>] [-csv-112a <file>]

  Replays the ledger and reports every gain realized in the fiscal year:
  classified records, short/long-term totals with estimated tax, the
  advance-tax period matrix, and the Schedule 112A rows.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "fy", capgains.FiscalYearOf(capgains.Today()).String(), "Fiscal year to report on, e.g. 2025-26")
	f.StringVar(&c.portfolio, "p", "", "Restrict the report to one portfolio")
	f.Float64Var(&c.slab, "slab", 30, "Income-tax slab rate percent, for short-term-at-slab estimates")
	f.StringVar(&c.csvFile, "csv", "", "Also export the gain records to a CSV file")
	f.StringVar(&c.csv112A, "csv-112a", "", "Also export the Schedule 112A rows to a CSV file")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fy, err := capgains.ParseFiscalYear(c.year)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	report, err := ledger.NewGainsReport(fy, capgains.GainsOptions{
		Portfolio:       c.portfolio,
		SlabRatePercent: c.slab,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csvFile != "" {
		if status := exportCSV(c.csvFile, func(w *os.File) error {
			return capgains.ExportGainsCSV(w, report)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}
	if c.csv112A != "" {
		if status := exportCSV(c.csv112A, func(w *os.File) error {
			return capgains.Export112ACSV(w, report.Schedule112A)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}

// exportCSV writes one export file and reports the outcome.
func exportCSV(path string, export func(*os.File) error) subcommands.ExitStatus {
	f, err := exportFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer f.Close()
	if err := export(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Exported %s\n", path)
	return subcommands.ExitSuccess
}
