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

// faCmd holds the flags for the 'fa' subcommand.
type faCmd struct {
	year    int
	csvFile string
}

func (*faCmd) Name() string     { return "fa" }
func (*faCmd) Synopsis() string { return "calendar-year Schedule FA foreign asset report" }
func (*faCmd) Usage() string {
	return `cgt fa [-y <year>] [-csv <file>]

  Lists every foreign asset held at any time during the calendar year, with
  opening, peak and closing values in the asset's native currency, plus
  gross income and gross sale proceeds.
`
}

func (c *faCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", capgains.Today().Year()-1, "Calendar year to report on")
	f.StringVar(&c.csvFile, "csv", "", "Also export the schedule to a CSV file")
}

func (c *faCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	report, err := ledger.NewScheduleFAReport(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing Schedule FA: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csvFile != "" {
		if status := exportCSV(c.csvFile, func(w *os.File) error {
			return capgains.ExportScheduleFACSV(w, report)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}

	printMarkdown(renderer.ScheduleFAMarkdown(report))
	return subcommands.ExitSuccess
}
