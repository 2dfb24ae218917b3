package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// parseDay parses a transaction date flag.
func parseDay(s string) (capgains.Date, error) {
	day, err := capgains.ParseDate(s)
	if err != nil {
		return capgains.Date{}, fmt.Errorf("error parsing date: %w", err)
	}
	return day, nil
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	asset    string
	quantity float64
	amount   float64
	fees     float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase units to open or add to a position" }
func (*buyCmd) Usage() string {
	return `cgt buy -d <date> -a <asset> -q <quantity> -amount <total> [-fees <fees>] [-m <memo>]

  Purchases units of an asset. The amount is the total consideration; fees
  are part of the acquisition cost.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.amount, "amount", 0, "Total purchase amount")
	f.Float64Var(&c.fees, "fees", 0, "Brokerage and taxes charged on top")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := capgains.NewBuy(day, c.memo, c.asset, capgains.Q(c.quantity),
		capgains.M(c.amount, ""), capgains.M(c.fees, ""))
	return appendTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	asset    string
	quantity float64
	amount   float64
	fees     float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units to trim or close a position" }
func (*sellCmd) Usage() string {
	return `cgt sell -d <date> -a <asset> -q <quantity> -amount <total> [-fees <fees>] [-m <memo>]

  Sells units of an asset. Fees reduce the net sale proceeds. The sale is
  rejected when the quantity exceeds the open holdings on that date.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.amount, "amount", 0, "Total sale consideration")
	f.Float64Var(&c.fees, "fees", 0, "Brokerage and taxes charged on the sale")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := capgains.NewSell(day, c.memo, c.asset, capgains.Q(c.quantity),
		capgains.M(c.amount, ""), capgains.M(c.fees, ""))
	return appendTransaction(tx)
}

// --- Contribution Command ---

type contributionCmd struct {
	date   string
	asset  string
	amount float64
	memo   string
}

func (*contributionCmd) Name() string { return "contribution" }
func (*contributionCmd) Synopsis() string {
	return "record a deposit into a unit-less account (PPF, fixed deposit)"
}
func (*contributionCmd) Usage() string {
	return `cgt contribution -d <date> -a <asset> -amount <total> [-m <memo>]

  Records a deposit into a contribution-style account.
`
}

func (c *contributionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.amount, "amount", 0, "Deposited amount")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *contributionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(capgains.NewContribution(day, c.memo, c.asset, capgains.M(c.amount, "")))
}

// --- Bonus Command ---

type bonusCmd struct {
	date     string
	asset    string
	quantity float64
	memo     string
}

func (*bonusCmd) Name() string     { return "bonus" }
func (*bonusCmd) Synopsis() string { return "record a bonus share issuance" }
func (*bonusCmd) Usage() string {
	return `cgt bonus -d <date> -a <asset> -q <quantity> [-m <memo>]

  Records bonus shares as a new zero-cost lot dated at the bonus event.
`
}

func (c *bonusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of bonus units")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *bonusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(capgains.NewBonus(day, c.memo, c.asset, capgains.Q(c.quantity)))
}

// --- Split Command ---

type splitCmd struct {
	date  string
	asset string
	num   int64
	den   int64
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "record a stock split" }
func (*splitCmd) Usage() string {
	return `cgt split -d <date> -a <asset> -num <n> -den <n>

  Records a split of num new units for den old units. Open lots are rescaled;
  total cost and acquisition dates are preserved.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker")
	f.Int64Var(&c.num, "num", 0, "New units per den old units")
	f.Int64Var(&c.den, "den", 1, "Old units")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.num <= 0 || c.den <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(capgains.NewSplit(day, c.asset, c.num, c.den))
}

// --- Dividend Command ---

type dividendCmd struct {
	date   string
	asset  string
	amount float64
	memo   string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment for an asset" }
func (*dividendCmd) Usage() string {
	return `cgt dividend -d <date> -a <asset> -amount <total> [-m <memo>]

  Records a dividend payment. Dividends never touch lots; they feed the
  gross income column of Schedule FA for foreign assets.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker receiving the dividend")
	f.Float64Var(&c.amount, "amount", 0, "Total dividend amount received")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(capgains.NewDividend(day, c.memo, c.asset, capgains.M(c.amount, "")))
}

// --- Interest Command ---

type interestCmd struct {
	date   string
	asset  string
	amount float64
	memo   string
}

func (*interestCmd) Name() string     { return "interest" }
func (*interestCmd) Synopsis() string { return "record a bond coupon or deposit interest credit" }
func (*interestCmd) Usage() string {
	return `cgt interest -d <date> -a <asset> -amount <total> [-m <memo>]

  Records an interest credit. Like dividends it never touches lots.
`
}

func (c *interestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker receiving the interest")
	f.Float64Var(&c.amount, "amount", 0, "Total interest amount credited")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *interestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(capgains.NewInterest(day, c.memo, c.asset, capgains.M(c.amount, "")))
}
