package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// --- Espp Command ---

type esppCmd struct {
	date     string
	asset    string
	quantity float64
	amount   float64
	fmv      float64
	memo     string
}

func (*esppCmd) Name() string     { return "espp" }
func (*esppCmd) Synopsis() string { return "record an employee stock purchase" }
func (*esppCmd) Usage() string {
	return `cgt espp -d <date> -a <asset> -q <quantity> -amount <paid> [-fmv <price>] [-m <memo>]

  Records an ESPP purchase. The amount is what was actually paid; when the
  per-unit FMV at purchase is given, it becomes the acquisition cost basis
  (the discount is taxed as salary, not as capital gain).
`
}

func (c *esppCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of units purchased")
	f.Float64Var(&c.amount, "amount", 0, "Total discounted price actually paid")
	f.Float64Var(&c.fmv, "fmv", 0, "Per-unit fair market value at purchase")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *esppCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := capgains.NewEspp(day, c.memo, c.asset, capgains.Q(c.quantity),
		capgains.M(c.amount, ""), capgains.M(c.fmv, ""))
	return appendTransaction(tx)
}

// --- Vest Command ---

type vestCmd struct {
	date        string
	asset       string
	quantity    float64
	fmv         float64
	coverQty    float64
	coverAmount float64
	memo        string
}

func (*vestCmd) Name() string     { return "vest" }
func (*vestCmd) Synopsis() string { return "record an RSU vesting event" }
func (*vestCmd) Usage() string {
	return `cgt vest -d <date> -a <asset> -q <quantity> -fmv <price> [-cover-q <quantity> -cover-amount <total>] [-m <memo>]

  Records an RSU vest. The lot's unit cost is the FMV at vest, never zero.
  When cover flags are given, the covering sale is part of the same
  transaction and is matched against the vested lot immediately.
`
}

func (c *vestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of units vested (gross)")
	f.Float64Var(&c.fmv, "fmv", 0, "Per-unit fair market value at vest")
	f.Float64Var(&c.coverQty, "cover-q", 0, "Number of units sold to cover taxes")
	f.Float64Var(&c.coverAmount, "cover-amount", 0, "Total proceeds of the covering sale")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *vestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.fmv <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if (c.coverQty > 0) != (c.coverAmount > 0) {
		fmt.Fprintln(os.Stderr, "-cover-q and -cover-amount must be given together")
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.coverQty > 0 {
		tx := capgains.NewVestSellToCover(day, c.memo, c.asset, capgains.Q(c.quantity),
			capgains.M(c.fmv, ""), capgains.Q(c.coverQty), capgains.M(c.coverAmount, ""))
		return appendTransaction(tx)
	}
	return appendTransaction(capgains.NewVest(day, c.memo, c.asset, capgains.Q(c.quantity), capgains.M(c.fmv, "")))
}
