package capgains

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Lot is a parcel of an asset acquired on a single date at a single unit
// cost. Lots are derived during replay and never persisted; a lot whose
// remaining quantity reaches zero is closed but kept for the audit trail.
type Lot struct {
	Asset     string
	Acquired  Date
	Quantity  Quantity // original acquired quantity, split-adjusted
	Remaining Quantity
	UnitCost  Money
	Seq       int  // ledger sequence of the acquisition transaction
	Adjusted  bool // a corporate action (split, bonus) shaped this lot
}

// Closed reports whether the lot has been fully consumed.
func (l Lot) Closed() bool { return l.Remaining.IsZero() }

// Cost returns the remaining acquisition cost of the lot.
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Remaining) }

// Match links one disposal transaction to one acquisition lot with the exact
// quantity drawn from it. Matches are an append-only event list: replaying
// the same ledger always yields the same matches in the same order.
type Match struct {
	Asset        string
	Quantity     Quantity
	Acquired     Date
	UnitCost     Money
	Disposed     Date
	UnitProceeds Money // gross sale price per unit, before fees
	UnitFees     Money // disposal fees per unit, pro-rated over the quantity
	AcquireSeq   int   // ledger sequence of the acquisition transaction
	DisposeSeq   int   // ledger sequence of the disposal transaction
	Adjusted     bool  // the consumed lot was shaped by a corporate action
}

// Cost returns the acquisition cost of the matched quantity.
func (m Match) Cost() Money { return m.UnitCost.Mul(m.Quantity) }

// Proceeds returns the gross sale consideration of the matched quantity,
// before disposal fees.
func (m Match) Proceeds() Money { return m.UnitProceeds.Mul(m.Quantity) }

// Fees returns the disposal fees attributed to the matched quantity.
func (m Match) Fees() Money { return m.UnitFees.Mul(m.Quantity) }

// InsufficientHoldingsError reports a disposal whose quantity exceeds the
// open quantity across all lots as of its date. It is a hard failure: a
// disposal is never silently clipped or partially matched.
type InsufficientHoldingsError struct {
	Asset     string
	Date      Date
	Requested Quantity
	Open      Quantity
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("on %s, cannot dispose %s of %s, open holdings are only %s",
		e.Date, e.Requested, e.Asset, e.Open)
}

// LotBook is the replayed lot state of a single asset: every lot ever
// opened, and the append-only list of matches consuming them in FIFO order.
type LotBook struct {
	asset   string
	lots    []Lot
	matches []Match
}

// Asset returns the ticker the book was replayed for.
func (b *LotBook) Asset() string { return b.asset }

// Lots returns all lots in acquisition order, open and closed.
func (b *LotBook) Lots() []Lot { return b.lots }

// Matches returns the disposal matches in the order they were produced.
func (b *LotBook) Matches() []Match { return b.matches }

// OpenQuantity returns the total remaining quantity across all lots.
func (b *LotBook) OpenQuantity() Quantity {
	total := Q(0)
	for _, lot := range b.lots {
		total = total.Add(lot.Remaining)
	}
	return total
}

// OpenCost returns the total remaining acquisition cost across all lots.
func (b *LotBook) OpenCost() Money {
	var total Money
	for _, lot := range b.lots {
		if !lot.Closed() {
			total = total.Add(lot.Cost())
		}
	}
	return total
}

func (b *LotBook) acquire(on Date, quantity Quantity, cost Money, seq int, adjusted bool) {
	b.lots = append(b.lots, Lot{
		Asset:     b.asset,
		Acquired:  on,
		Quantity:  quantity,
		Remaining: quantity,
		UnitCost:  cost.Div(quantity),
		Seq:       seq,
		Adjusted:  adjusted,
	})
}

// dispose consumes open lots oldest-first. The unit proceeds attributed to
// every match is the disposal's own gross price, not the lot's; fees are
// pro-rated per unit so each match carries its share.
func (b *LotBook) dispose(on Date, quantity Quantity, proceeds, fees Money, seq int) error {
	open := b.OpenQuantity()
	if quantity.GreaterThan(open) {
		return &InsufficientHoldingsError{Asset: b.asset, Date: on, Requested: quantity, Open: open}
	}
	unitProceeds := proceeds.Div(quantity)
	unitFees := fees.Div(quantity)
	left := quantity
	for i := range b.lots {
		if left.IsZero() {
			break
		}
		lot := &b.lots[i]
		if lot.Closed() {
			continue
		}
		take := lot.Remaining.Min(left)
		b.matches = append(b.matches, Match{
			Asset:        b.asset,
			Quantity:     take,
			Acquired:     lot.Acquired,
			UnitCost:     lot.UnitCost,
			Disposed:     on,
			UnitProceeds: unitProceeds,
			UnitFees:     unitFees,
			AcquireSeq:   lot.Seq,
			DisposeSeq:   seq,
			Adjusted:     lot.Adjusted,
		})
		lot.Remaining = lot.Remaining.Sub(take)
		left = left.Sub(take)
	}
	return nil
}

// split rescales the outstanding quantity of every open lot by num/den and
// the unit cost by den/num, preserving total cost and acquisition dates.
func (b *LotBook) split(num, den int64) {
	n, d := Q(num), Q(den)
	for i := range b.lots {
		lot := &b.lots[i]
		if lot.Closed() {
			continue
		}
		lot.Quantity = lot.Quantity.Mul(n).Div(d)
		lot.Remaining = lot.Remaining.Mul(n).Div(d)
		lot.UnitCost = lot.UnitCost.Mul(d).Div(n)
		lot.Adjusted = true
	}
}

// Replay rebuilds the lot book of one asset from the ledger, consuming
// disposals in first-in-first-out order, up to and including a given date.
//
// Corporate actions never consume nor create disposal events: a split
// rescales open lots, a bonus opens a new zero-cost lot dated at the bonus
// event. Income events (dividend, interest) never touch lots. An RSU vest
// opens a lot at the fair market value at vest and, when the vest embeds a
// sell-to-cover, immediately disposes the covering quantity from the same
// submission.
func (l *Ledger) Replay(ticker string, upTo Date) (*LotBook, error) {
	asset := l.Asset(ticker)
	if asset == nil {
		return nil, fmt.Errorf("asset %q not declared in ledger", ticker)
	}
	book := &LotBook{asset: ticker}
	zero := M(decimal.Zero, asset.Currency())

	for seq, tx := range l.AssetTransactions(ticker, upTo) {
		switch v := tx.(type) {
		case Buy:
			book.acquire(v.When(), v.Quantity, v.Amount.Add(v.Fees), seq, false)
		case Contribution:
			// one unit per currency unit, so balances replay like lots.
			book.acquire(v.When(), Q(v.Amount.Decimal()), v.Amount, seq, false)
		case Espp:
			book.acquire(v.When(), v.Quantity, v.CostBasis(), seq, false)
		case Vest:
			book.acquire(v.When(), v.Quantity, v.FMV.Mul(v.Quantity), seq, false)
			if v.SellsToCover() {
				if err := book.dispose(v.When(), v.CoverQuantity, v.CoverAmount, zero, seq); err != nil {
					return nil, err
				}
			}
		case Bonus:
			book.acquire(v.When(), v.Quantity, zero, seq, true)
		case Split:
			book.split(v.Numerator, v.Denominator)
		case Sell:
			if err := book.dispose(v.When(), v.Quantity, v.Amount, v.Fees, seq); err != nil {
				return nil, err
			}
		case Dividend, Interest:
			// quantity-neutral income, nothing to do.
		}
	}
	return book, nil
}
