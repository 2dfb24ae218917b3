package capgains

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// GainRecord is one matched buy/sell pair after classification and
// grandfathering. It is derived and ephemeral: recomputed on demand, never
// the source of truth.
type GainRecord struct {
	Asset    string
	Name     string
	ISIN     string
	Category AssetCategory

	Acquired     Date
	Disposed     Date
	Quantity     Quantity
	UnitCost     Money
	UnitProceeds Money

	Cost         Money // acquisition cost after grandfathering, when applied
	OriginalCost Money
	FMVCost      Money // FMV-at-cutoff x quantity, zero unless grandfathered
	Proceeds     Money // gross sale consideration, before fees
	Fees         Money // disposal fees attributed to this match
	Gain         Money // Proceeds - Fees - Cost

	Term      Term
	RateLabel string

	Foreign       bool
	Grandfathered bool
	MissingFMV    bool // qualified for grandfathering but no FMV snapshot recorded
	HybridGuess   bool // regime chosen by the free-text heuristic, review advised
	Adjusted      bool // consumed lot was shaped by a corporate action
}

// Schedule112ARow is one line of the grandfathered-equity schedule.
type Schedule112ARow struct {
	ISIN          string
	Name          string
	Quantity      Quantity
	SalePrice     Money // per unit, gross
	Consideration Money // gross, before fees
	OriginalCost  Money
	FMVCost       Money
	FinalCost     Money
	Deductions    Money // disposal fees claimed against the consideration
	Balance       Money
}

// PeriodRow is one line of the advance-tax period matrix: gains realized per
// rate label, summed into the five intra-year windows by disposal date.
type PeriodRow struct {
	Label string
	Sums  [SubPeriodCount]Money
}

// GainsOptions tunes a gains report computation.
type GainsOptions struct {
	// Portfolio restricts the report to assets of a named portfolio.
	Portfolio string
	// SlabRatePercent is the caller's income-tax slab rate, used only for
	// the estimated tax of short-term-at-slab categories. A float is
	// accepted at this boundary and converted to an exact decimal once.
	SlabRatePercent float64
	// Rules overrides the statutory classification table.
	Rules RuleSet
	// Detector overrides the hybrid-fund detector.
	Detector HybridDetector
}

// GainsReport is the fiscal-year capital gains summary.
type GainsReport struct {
	Year           FiscalYear
	AssessmentYear string

	Records []GainRecord // domestic gains, in replay order per asset
	Foreign []GainRecord // foreign-asset gains, native currency, no rate label

	ShortTermTotal    Money
	LongTermTotal     Money
	EstimatedTaxShort Money
	EstimatedTaxLong  Money

	Periods      []PeriodRow
	Schedule112A []Schedule112ARow
}

// NewGainsReport replays the full transaction history and aggregates every
// disposal matched inside the fiscal year. The computation is a pure pass
// over the ledger snapshot: running it twice over an unchanged ledger yields
// identical output.
func (l *Ledger) NewGainsReport(fy FiscalYear, opts GainsOptions) (*GainsReport, error) {
	rules := opts.Rules
	if rules == nil {
		rules = StatutoryRules()
	}
	detector := opts.Detector
	if detector == nil {
		detector = KeywordDetector{}
	}
	slab := decimal.NewFromFloat(opts.SlabRatePercent)

	report := &GainsReport{
		Year:              fy,
		AssessmentYear:    fy.AssessmentYear(),
		ShortTermTotal:    INR(0),
		LongTermTotal:     INR(0),
		EstimatedTaxShort: INR(0),
		EstimatedTaxLong:  INR(0),
	}
	window := fy.Range()
	periods := make(map[string]*PeriodRow)

	for asset := range l.AllAssets() {
		if opts.Portfolio != "" && asset.Portfolio() != opts.Portfolio {
			continue
		}
		book, err := l.Replay(asset.Ticker(), window.To)
		if err != nil {
			return nil, fmt.Errorf("could not replay lots for %s: %w", asset.Ticker(), err)
		}
		for _, match := range book.Matches() {
			if !window.Contains(match.Disposed) {
				continue
			}
			rec, rule, err := classifyMatch(asset, match, rules, detector)
			if err != nil {
				return nil, err
			}

			if rec.Foreign {
				report.Foreign = append(report.Foreign, rec)
				continue
			}
			report.Records = append(report.Records, rec)

			if rec.Grandfathered {
				report.Schedule112A = append(report.Schedule112A, Schedule112ARow{
					ISIN:          rec.ISIN,
					Name:          rec.Name,
					Quantity:      rec.Quantity,
					SalePrice:     rec.UnitProceeds,
					Consideration: rec.Proceeds,
					OriginalCost:  rec.OriginalCost,
					FMVCost:       rec.FMVCost,
					FinalCost:     rec.Cost,
					Deductions:    rec.Fees,
					Balance:       rec.Gain,
				})
			}

			// totals and estimated tax
			if rec.Term == LongTerm {
				report.LongTermTotal = report.LongTermTotal.Add(rec.Gain)
				if rate, ok := rule.Rate(LongTerm); ok {
					report.EstimatedTaxLong = report.EstimatedTaxLong.Add(rec.Gain.Rate(rate))
				}
			} else {
				report.ShortTermTotal = report.ShortTermTotal.Add(rec.Gain)
				rate, ok := rule.Rate(ShortTerm)
				if !ok {
					rate = slab
				}
				report.EstimatedTaxShort = report.EstimatedTaxShort.Add(rec.Gain.Rate(rate))
			}

			// advance-tax period matrix, keyed by disposal date only.
			sub, err := fy.SubPeriod(rec.Disposed)
			if err != nil {
				return nil, err
			}
			row, ok := periods[rec.RateLabel]
			if !ok {
				row = &PeriodRow{Label: rec.RateLabel}
				for i := range row.Sums {
					row.Sums[i] = INR(0)
				}
				periods[rec.RateLabel] = row
			}
			row.Sums[sub] = row.Sums[sub].Add(rec.Gain)
		}
	}

	labels := make([]string, 0, len(periods))
	for label := range periods {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		report.Periods = append(report.Periods, *periods[label])
	}
	return report, nil
}

// classifyMatch turns one lot match into a gain record: regime resolution
// (with the hybrid heuristic for untagged funds), term classification, then
// the grandfathering override.
func classifyMatch(asset Asset, match Match, rules RuleSet, detector HybridDetector) (GainRecord, Rule, error) {
	category := asset.Category()
	hybridGuess := false
	if category == MutualFund {
		hybrid, heuristic := detector.IsHybrid(asset)
		if hybrid {
			category = EquityFund
		} else {
			category = DebtFund
		}
		hybridGuess = heuristic
	}

	term, rule, err := rules.Classify(category, match.Acquired, match.Disposed)
	if err != nil {
		return GainRecord{}, Rule{}, err
	}

	rec := GainRecord{
		Asset:        asset.Ticker(),
		Name:         asset.Name(),
		ISIN:         asset.ISIN(),
		Category:     asset.Category(),
		Acquired:     match.Acquired,
		Disposed:     match.Disposed,
		Quantity:     match.Quantity,
		UnitCost:     match.UnitCost,
		UnitProceeds: match.UnitProceeds,
		OriginalCost: match.Cost(),
		Cost:         match.Cost(),
		Proceeds:     match.Proceeds(),
		Fees:         match.Fees(),
		Term:         term,
		RateLabel:    rule.Label(term),
		Foreign:      asset.Foreign(),
		HybridGuess:  hybridGuess,
		Adjusted:     match.Adjusted,
	}

	// Rate application for foreign assets is a jurisdiction-specific
	// downstream step; the term still follows the domestic-equivalent rule.
	if rec.Foreign {
		rec.RateLabel = ""
	}

	equityRegime := category == Stock || category == EquityFund
	if !rec.Foreign && qualifiesForGrandfathering(equityRegime, term, match.Acquired) {
		if fmv, ok := asset.FMV(); ok {
			// the cap is the full sale consideration, before fees.
			rec.Cost = grandfatheredCost(rec.OriginalCost, fmv, match.Quantity, rec.Proceeds)
			rec.FMVCost = fmv.Mul(match.Quantity)
			rec.Grandfathered = true
		} else {
			// degrade with a flag, never assume a zero benefit silently.
			rec.MissingFMV = true
		}
	}

	rec.Gain = rec.Proceeds.Sub(rec.Fees).Sub(rec.Cost)
	return rec, rule, nil
}
