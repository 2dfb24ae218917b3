package capgains

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// Ledger is the append-only record of all transactions, kept in chronological
// order. Transactions on the same day keep their insertion order, which is
// the stable tie-break every derived computation relies on.
//
// The ledger itself never computes; lots, gains and Schedule FA entries are
// all derived on demand by replaying it.
type Ledger struct {
	transactions []Transaction
	assets       map[string]Asset // index assets by ticker
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		assets:       make(map[string]Asset),
	}
}

// Asset returns the asset declared with this ticker, or nil if unknown.
func (l *Ledger) Asset(ticker string) *Asset {
	a, ok := l.assets[ticker]
	if !ok {
		return nil
	}
	return &a
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	// process asset declarations.
	l.processTx(txs...)
	l.stableSort()
}

func (l *Ledger) processTx(txs ...Transaction) {
	for _, tx := range txs {
		if v, ok := tx.(Declare); ok {
			l.assets[v.Ticker] = v.NewAsset()
		}
	}
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (e.g., resolving a missing currency). It returns the validated
// (and potentially modified) transaction or an error detailing any validation
// failures.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	fixed, err := tx.Validate(l)
	if err != nil {
		return fixed, fmt.Errorf("invalid %s transaction on %s: %w", tx.What(), tx.When(), err)
	}
	return fixed, nil
}

// Transactions returns an iterator that yields each transaction with its
// ledger sequence number, in chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AssetTransactions returns an iterator over the transactions of a single
// asset up to and including a given date, with their ledger sequence numbers.
func (l *Ledger) AssetTransactions(ticker string, max Date) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if tx.When().After(max) {
				// The ledger is sorted by date, so it's safe to return.
				return
			}
			at, ok := tx.(interface{ asset() string })
			if !ok || at.asset() != ticker {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AllAssets iterates over assets declared in this ledger, in ticker order.
func (l *Ledger) AllAssets() iter.Seq[Asset] {
	return func(yield func(Asset) bool) {
		tickers := slices.Collect(maps.Keys(l.assets))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(l.assets[ticker]) {
				return
			}
		}
	}
}

// Position computes the open quantity of an asset on a specific date by
// replaying its lots. A replay failure is the caller's problem to report;
// returning zero here would hide a corrupted ledger behind a wrong balance.
func (l *Ledger) Position(ticker string, on Date) (Quantity, error) {
	book, err := l.Replay(ticker, on)
	if err != nil {
		return Q(0), err
	}
	return book.OpenQuantity(), nil
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}
