// Package cmd implements the CLI application to manage a capital gains ledger.
package cmd

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&declareCmd{},
	&buyCmd{},
	&sellCmd{},
	&contributionCmd{},
	&esppCmd{},
	&vestCmd{},
	&bonusCmd{},
	&splitCmd{},
	&dividendCmd{},
	&interestCmd{},
	&gainsCmd{},
	&faCmd{},
	&logCmd{},
	&fmtCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")

// DecodeLedger loads the app ledger file. A missing file is an empty ledger,
// so the first transaction can be appended without a setup step.
func DecodeLedger() (*capgains.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("warning, ledger file does not exist, starting from an empty ledger")
			return capgains.NewLedger(), nil
		}
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return capgains.DecodeLedger(f)
}

// appendTransaction validates a transaction against the current ledger and
// appends it to the app ledger file.
func appendTransaction(tx capgains.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fixed, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := capgains.EncodeTransaction(f, fixed); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders a markdown report on the terminal, falling back to
// the raw markdown when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// exportFile creates a file for a CSV export.
func exportFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fs.FileMode(0644))
	if err != nil {
		return nil, fmt.Errorf("cannot create export file %q: %w", path, err)
	}
	return f, nil
}
