package capgains

import (
	"github.com/shopspring/decimal"
)

// ScheduleFAEntry is the calendar-year position of one foreign asset, in the
// asset's native currency. Values are derived from the ledger's own
// transaction prices: the unit value at any date is the last transacted unit
// price on or before that date, so the report needs no market data feed.
type ScheduleFAEntry struct {
	Asset    string
	Name     string
	ISIN     string
	Country  string
	Currency string

	FirstAcquired Date // date of the first acquisition ever recorded

	OpeningQuantity Quantity
	OpeningValue    Money
	PeakValue       Money
	PeakDate        Date
	ClosingQuantity Quantity
	ClosingValue    Money

	GrossIncome   Money // dividends and interest credited during the year
	GrossProceeds Money // sale consideration, including sell-to-cover, during the year
}

// ScheduleFAReport lists every foreign asset held at any time during a
// calendar year.
type ScheduleFAReport struct {
	Year           int    // calendar year of the reporting period
	AssessmentYear string // assessment year in which the schedule is filed
	Entries        []ScheduleFAEntry
}

// NewScheduleFAReport builds the foreign-asset schedule for a calendar year.
// The peak value is evaluated at the first of January and after every in-year
// transaction; between transactions the value of a holding cannot change,
// since valuation follows transacted prices.
func (l *Ledger) NewScheduleFAReport(year int) (*ScheduleFAReport, error) {
	report := &ScheduleFAReport{
		Year: year,
		// The schedule for calendar year Y is filed with the return of the
		// fiscal year that ends in Y+1.
		AssessmentYear: FiscalYear(year).AssessmentYear(),
	}
	window := CalendarYear(year)

	for asset := range l.AllAssets() {
		if !asset.Foreign() {
			continue
		}
		entry, held, err := l.scheduleFAEntry(asset, window)
		if err != nil {
			return nil, err
		}
		if held {
			report.Entries = append(report.Entries, entry)
		}
	}
	return report, nil
}

// faState is the running valuation state of one asset during a linear pass
// over its transactions.
type faState struct {
	quantity  Quantity
	unitPrice Money
}

func (s faState) value() Money { return s.unitPrice.Mul(s.quantity) }

// apply folds one transaction into the running position and price. The unit
// price follows the same cost conventions as lot replay; a split rescales the
// remembered price so the position value is preserved across it.
func (s *faState) apply(tx Transaction) {
	switch v := tx.(type) {
	case Buy:
		s.quantity = s.quantity.Add(v.Quantity)
		s.unitPrice = v.Amount.Add(v.Fees).Div(v.Quantity)
	case Contribution:
		s.quantity = s.quantity.Add(Q(v.Amount.Decimal()))
		s.unitPrice = M(decimal.NewFromInt(1), v.Amount.Currency())
	case Espp:
		s.quantity = s.quantity.Add(v.Quantity)
		s.unitPrice = v.CostBasis().Div(v.Quantity)
	case Vest:
		s.quantity = s.quantity.Add(v.Quantity)
		s.unitPrice = v.FMV
		if v.SellsToCover() {
			s.quantity = s.quantity.Sub(v.CoverQuantity)
			s.unitPrice = v.CoverAmount.Div(v.CoverQuantity)
		}
	case Bonus:
		s.quantity = s.quantity.Add(v.Quantity)
	case Split:
		n, d := Q(v.Numerator), Q(v.Denominator)
		s.quantity = s.quantity.Mul(n).Div(d)
		s.unitPrice = s.unitPrice.Mul(d).Div(n)
	case Sell:
		s.quantity = s.quantity.Sub(v.Quantity)
		s.unitPrice = v.Amount.Sub(v.Fees).Div(v.Quantity)
	}
}

func (l *Ledger) scheduleFAEntry(asset Asset, window Range) (ScheduleFAEntry, bool, error) {
	entry := ScheduleFAEntry{
		Asset:         asset.Ticker(),
		Name:          asset.Name(),
		ISIN:          asset.ISIN(),
		Country:       asset.Country(),
		Currency:      asset.Currency(),
		GrossIncome:   M(decimal.Zero, asset.Currency()),
		GrossProceeds: M(decimal.Zero, asset.Currency()),
	}

	var state faState
	state.unitPrice = M(decimal.Zero, asset.Currency())
	opened := false // crossed into the reporting year
	active := false // any in-year transaction seen

	openAt := func(d Date) {
		entry.OpeningQuantity = state.quantity
		entry.OpeningValue = state.value()
		entry.PeakValue = entry.OpeningValue
		entry.PeakDate = d
		opened = true
	}

	for _, tx := range l.AssetTransactions(asset.Ticker(), window.To) {
		if entry.FirstAcquired.IsZero() {
			switch tx.What() {
			case CmdBuy, CmdContribution, CmdEspp, CmdVest, CmdBonus:
				entry.FirstAcquired = tx.When()
			}
		}
		if !opened && !tx.When().Before(window.From) {
			openAt(window.From)
		}
		state.apply(tx)

		if window.Contains(tx.When()) {
			active = true
			if v := state.value(); v.GreaterThan(entry.PeakValue) {
				entry.PeakValue = v
				entry.PeakDate = tx.When()
			}
			switch v := tx.(type) {
			case Sell:
				entry.GrossProceeds = entry.GrossProceeds.Add(v.Amount)
			case Vest:
				if v.SellsToCover() {
					entry.GrossProceeds = entry.GrossProceeds.Add(v.CoverAmount)
				}
			case Dividend:
				entry.GrossIncome = entry.GrossIncome.Add(v.Amount)
			case Interest:
				entry.GrossIncome = entry.GrossIncome.Add(v.Amount)
			}
		}
	}
	if !opened {
		// no transaction on or after the first of January.
		openAt(window.From)
	}
	entry.ClosingQuantity = state.quantity
	entry.ClosingValue = state.value()

	held := active || entry.OpeningQuantity.IsPositive()
	return entry, held, nil
}
