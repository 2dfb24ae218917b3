package capgains

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Term is the holding-period classification of a realized gain.
type Term string

const (
	ShortTerm Term = "short-term"
	LongTerm  Term = "long-term"
)

// Legislative cutover dates. Every regime in the statutory table is gated on
// one of these; adding a future cutover means appending rules, not editing
// the existing ones.
var (
	// DebtFundReclassification is the date on and after which newly acquired
	// debt-fund units are always short-term, with no holding-period test.
	DebtFundReclassification = NewDate(2023, time.April, 1)
	// RateRationalisation is the date on and after which disposals fall under
	// the rationalised rates and the debt long-term threshold drops from 36
	// to 24 months.
	RateRationalisation = NewDate(2024, time.July, 23)
	// GrandfatheringCutoff is the date of the statutory cost-basis snapshot
	// for equity assets acquired before it.
	GrandfatheringCutoff = NewDate(2018, time.January, 31)
)

// Rule is one line of the classification table. A rule applies when the
// asset category is listed and the acquisition and disposal dates satisfy
// the date gates; a zero date means no constraint. LongTermOverDays of zero
// means the rule never yields a long-term verdict.
type Rule struct {
	Name             string
	Categories       []AssetCategory
	AcquiredOnAfter  Date
	AcquiredBefore   Date
	DisposedOnAfter  Date
	DisposedBefore   Date
	LongTermOverDays int
	ShortLabel       string
	LongLabel        string
	ShortRate        decimal.Decimal // percent; zero means taxed at the caller's slab rate
	LongRate         decimal.Decimal // percent; estimate only, exemption thresholds are out of scope
}

func (r Rule) matches(category AssetCategory, acquired, disposed Date) bool {
	found := false
	for _, c := range r.Categories {
		if c == category {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if !r.AcquiredOnAfter.IsZero() && acquired.Before(r.AcquiredOnAfter) {
		return false
	}
	if !r.AcquiredBefore.IsZero() && !acquired.Before(r.AcquiredBefore) {
		return false
	}
	if !r.DisposedOnAfter.IsZero() && disposed.Before(r.DisposedOnAfter) {
		return false
	}
	if !r.DisposedBefore.IsZero() && !disposed.Before(r.DisposedBefore) {
		return false
	}
	return true
}

// term classifies a holding duration in whole days under this rule.
// A same-day disposal has duration zero and is short-term by definition.
func (r Rule) term(acquired, disposed Date) Term {
	if r.LongTermOverDays > 0 && disposed.Sub(acquired) > r.LongTermOverDays {
		return LongTerm
	}
	return ShortTerm
}

// Label returns the tax-rate label of the rule for a term.
func (r Rule) Label(t Term) string {
	if t == LongTerm {
		return r.LongLabel
	}
	return r.ShortLabel
}

// Rate returns the estimated statutory rate percent for a term, and false
// when the gain is taxed at the caller's slab rate instead.
func (r Rule) Rate(t Term) (decimal.Decimal, bool) {
	if t == LongTerm {
		return r.LongRate, !r.LongRate.IsZero()
	}
	return r.ShortRate, !r.ShortRate.IsZero()
}

// NoRuleError reports an asset category unmapped to any classification rule.
// Guessing a category would silently mis-tax, so this is a hard failure.
type NoRuleError struct {
	Category AssetCategory
	Acquired Date
	Disposed Date
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("no classification rule for category %q (acquired %s, disposed %s)",
		e.Category, e.Acquired, e.Disposed)
}

// RuleSet is an ordered classification table; the first matching rule wins.
type RuleSet []Rule

// Classify maps an asset category and the acquisition/disposal dates to a
// short-term/long-term verdict and the rule that produced it.
func (rs RuleSet) Classify(category AssetCategory, acquired, disposed Date) (Term, Rule, error) {
	for _, r := range rs {
		if r.matches(category, acquired, disposed) {
			return r.term(acquired, disposed), r, nil
		}
	}
	return "", Rule{}, &NoRuleError{Category: category, Acquired: acquired, Disposed: disposed}
}

// StatutoryRules returns the classification table of the Indian capital
// gains regimes. The table is ordered: regime-specific rules come before the
// residual rule of their category.
func StatutoryRules() RuleSet {
	pct := decimal.NewFromInt
	return RuleSet{
		// Listed equity and equity-oriented funds: 12-month threshold; the
		// rates changed for disposals on or after 23-Jul-2024.
		{
			Name:             "equity",
			Categories:       []AssetCategory{Stock, EquityFund},
			DisposedBefore:   RateRationalisation,
			LongTermOverDays: 365,
			ShortLabel:       "STCG 15%",
			LongLabel:        "LTCG 10%",
			ShortRate:        pct(15),
			LongRate:         pct(10),
		},
		{
			Name:             "equity-rationalised",
			Categories:       []AssetCategory{Stock, EquityFund},
			DisposedOnAfter:  RateRationalisation,
			LongTermOverDays: 365,
			ShortLabel:       "STCG 20%",
			LongLabel:        "LTCG 12.5%",
			ShortRate:        pct(20),
			LongRate:         decimal.NewFromFloat(12.5),
		},
		// Debt funds acquired on or after 1-Apr-2023 are always short-term,
		// taxed at slab, regardless of holding duration.
		{
			Name:            "debt-reclassified",
			Categories:      []AssetCategory{DebtFund},
			AcquiredOnAfter: DebtFundReclassification,
			ShortLabel:      "slab",
		},
		// Older debt-fund units: 24-month threshold for disposals on or
		// after 23-Jul-2024, 36-month before.
		{
			Name:             "debt-rationalised",
			Categories:       []AssetCategory{DebtFund},
			AcquiredBefore:   DebtFundReclassification,
			DisposedOnAfter:  RateRationalisation,
			LongTermOverDays: 730,
			ShortLabel:       "slab",
			LongLabel:        "LTCG 12.5%",
			LongRate:         decimal.NewFromFloat(12.5),
		},
		{
			Name:             "debt",
			Categories:       []AssetCategory{DebtFund},
			AcquiredBefore:   DebtFundReclassification,
			DisposedBefore:   RateRationalisation,
			LongTermOverDays: 1095,
			ShortLabel:       "slab",
			LongLabel:        "LTCG 20% indexed",
			LongRate:         pct(20),
		},
		// Listed bonds keep their own rule so the threshold can diverge from
		// the debt-fund regime.
		{
			Name:             "listed-bond",
			Categories:       []AssetCategory{Bond},
			DisposedBefore:   RateRationalisation,
			LongTermOverDays: 365,
			ShortLabel:       "slab",
			LongLabel:        "LTCG 10%",
			LongRate:         pct(10),
		},
		{
			Name:             "listed-bond-rationalised",
			Categories:       []AssetCategory{Bond},
			DisposedOnAfter:  RateRationalisation,
			LongTermOverDays: 365,
			ShortLabel:       "slab",
			LongLabel:        "LTCG 12.5%",
			LongRate:         decimal.NewFromFloat(12.5),
		},
	}
}
