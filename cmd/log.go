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

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct {
	start string
	end   string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the chronological transaction journal" }
func (*logCmd) Usage() string {
	return `cgt log [-s <start_date>] [-d <end_date>]

  Lists the transactions of the ledger in chronological order. Without
  flags the whole ledger is shown.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "The start date of the range")
	f.StringVar(&c.end, "d", "", "The end date of the range")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	window := capgains.Range{From: ledger.OldestTransactionDate(), To: ledger.NewestTransactionDate()}
	if c.start != "" {
		if window.From, err = capgains.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.end != "" {
		if window.To, err = capgains.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	printMarkdown(renderer.LogMarkdown(ledger, window))
	return subcommands.ExitSuccess
}
