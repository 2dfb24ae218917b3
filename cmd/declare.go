package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// declareCmd holds the flags for the 'declare' subcommand.
type declareCmd struct {
	date      string
	ticker    string
	name      string
	isin      string
	category  string
	sector    string
	country   string
	currency  string
	portfolio string
	fmv2018   float64
	memo      string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare an asset and its classification attributes" }
func (*declareCmd) Usage() string {
	return `cgt declare -t <ticker> -c <category> [-n <name>] [-isin <isin>] [-sector <sector>] [-country <country>] [-cur <currency>] [-p <portfolio>] [-fmv2018 <price>] [-m <memo>]

  Declares an asset in the ledger. Every other transaction refers to the
  asset by its ticker. The category drives the capital gains classification;
  the per-unit FMV on 31-Jan-2018 enables the grandfathered cost basis.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Declaration date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Asset ticker")
	f.StringVar(&c.name, "n", "", "Asset full name")
	f.StringVar(&c.isin, "isin", "", "Asset ISIN")
	f.StringVar(&c.category, "c", "", "Asset category (stock, mutual-fund, equity-fund, debt-fund, bond, fixed-deposit, ppf)")
	f.StringVar(&c.sector, "sector", "", "Free-text sector or scheme description")
	f.StringVar(&c.country, "country", "IN", "Country the asset is held in (ISO code)")
	f.StringVar(&c.currency, "cur", "INR", "Asset currency (ISO code)")
	f.StringVar(&c.portfolio, "p", "", "Portfolio grouping label")
	f.Float64Var(&c.fmv2018, "fmv2018", 0, "Per-unit fair market value on 31-Jan-2018")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := capgains.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	category, err := capgains.ParseAssetCategory(c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	asset := capgains.NewAsset(c.ticker, c.name, c.isin, category, c.sector, c.country, c.currency)
	if c.portfolio != "" {
		asset = asset.WithPortfolio(c.portfolio)
	}
	if c.fmv2018 > 0 {
		asset = asset.WithFMV(capgains.M(c.fmv2018, c.currency))
	}
	return appendTransaction(capgains.NewDeclare(day, c.memo, asset))
}
