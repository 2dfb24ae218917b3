package capgains

import "fmt"

// AssetCategory is the statutory bucket an asset belongs to. The category,
// not the transaction, decides which holding-period regime applies to a
// disposal.
type AssetCategory string

const (
	// Stock is a listed equity share.
	Stock AssetCategory = "stock"
	// MutualFund is a fund with no explicit orientation tag; the equity/debt
	// regime is decided heuristically from its sector and name text.
	MutualFund AssetCategory = "mutual-fund"
	// EquityFund is a fund explicitly tagged as equity-oriented.
	EquityFund AssetCategory = "equity-fund"
	// DebtFund is a fund explicitly tagged as debt-oriented.
	DebtFund AssetCategory = "debt-fund"
	// Bond is listed fixed income that does not meet the debt-fund definition.
	Bond AssetCategory = "bond"
	// FixedDeposit and PPF are income-only accounts; they never realize
	// capital gains and have no classification rule.
	FixedDeposit AssetCategory = "fixed-deposit"
	PPF          AssetCategory = "ppf"
)

// ParseAssetCategory parses a category string as found in data files.
func ParseAssetCategory(s string) (AssetCategory, error) {
	switch c := AssetCategory(s); c {
	case Stock, MutualFund, EquityFund, DebtFund, Bond, FixedDeposit, PPF:
		return c, nil
	default:
		return "", fmt.Errorf("unknown asset category %q", s)
	}
}

// Asset carries the classification attributes of a holding. Identity is the
// ticker; classification attributes may be corrected administratively, which
// invalidates any previously computed report for that asset (reports are
// always recomputed from scratch, never patched).
type Asset struct {
	ticker    string
	name      string
	isin      string
	category  AssetCategory
	sector    string // free text, input to the hybrid-fund heuristic
	country   string // ISO 3166-1 alpha-2; foreign when not "IN"
	currency  string
	portfolio string
	fmv2018   Money // per-unit fair market value on 31-Jan-2018, currency-less when never recorded
}

// NewAsset creates an asset declaration.
func NewAsset(ticker, name, isin string, category AssetCategory, sector, country, currency string) Asset {
	if country == "" {
		country = "IN"
	}
	return Asset{
		ticker:   ticker,
		name:     name,
		isin:     isin,
		category: category,
		sector:   sector,
		country:  country,
		currency: currency,
	}
}

// WithFMV returns a copy of the asset carrying the grandfathering FMV
// snapshot. A currency-less value is stamped with the asset currency, so a
// recorded snapshot is always distinguishable from an absent one.
func (a Asset) WithFMV(perUnit Money) Asset {
	if perUnit.Currency() == "" {
		perUnit = M(perUnit.Decimal(), a.currency)
	}
	a.fmv2018 = perUnit
	return a
}

// WithPortfolio returns a copy of the asset assigned to a named portfolio.
func (a Asset) WithPortfolio(portfolio string) Asset {
	a.portfolio = portfolio
	return a
}

func (a Asset) Ticker() string          { return a.ticker }
func (a Asset) Name() string            { return a.name }
func (a Asset) ISIN() string            { return a.isin }
func (a Asset) Category() AssetCategory { return a.category }
func (a Asset) Sector() string          { return a.sector }
func (a Asset) Country() string         { return a.country }
func (a Asset) Currency() string        { return a.currency }
func (a Asset) Portfolio() string       { return a.portfolio }

// FMV returns the per-unit fair market value on the grandfathering cutoff
// date, and whether a snapshot was recorded at all. A recorded snapshot
// always carries the asset currency, so a currency-less zero means "never
// recorded" while an explicit zero in currency means "worthless on the
// cutoff date".
func (a Asset) FMV() (Money, bool) { return a.fmv2018, a.fmv2018.Currency() != "" }

// Foreign reports whether the asset is reportable in Schedule FA.
func (a Asset) Foreign() bool { return a.country != "IN" }
