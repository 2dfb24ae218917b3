package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// LogMarkdown renders the transaction journal of a ledger, optionally
// restricted to a date range.
func LogMarkdown(ledger *capgains.Ledger, window capgains.Range) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transactions from %s to %s\n\n", window.From, window.To)
	fmt.Fprintln(&b, "| Date | Event |")
	fmt.Fprintln(&b, "|:---|:---|")
	for _, tx := range ledger.Transactions() {
		if !window.Contains(tx.When()) {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", tx.When(), Transaction(tx))
	}
	fmt.Fprintln(&b)
	return b.String()
}

// Transaction renders a transaction to a string.
func Transaction(tx capgains.Transaction) string {
	switch v := tx.(type) {
	case capgains.Declare:
		return fmt.Sprintf("Declared %s as %s (%s)", v.Ticker, v.Category, v.Currency)
	case capgains.Buy:
		return fmt.Sprintf("Bought %s of %s for %s", v.Quantity, v.Asset, v.Amount)
	case capgains.Sell:
		return fmt.Sprintf("Sold %s of %s for %s", v.Quantity, v.Asset, v.Amount)
	case capgains.Contribution:
		return fmt.Sprintf("Contributed %s to %s", v.Amount, v.Asset)
	case capgains.Espp:
		return fmt.Sprintf("Purchased %s of %s for %s (ESPP)", v.Quantity, v.Asset, v.Amount)
	case capgains.Vest:
		if v.SellsToCover() {
			return fmt.Sprintf("Vested %s of %s at %s, sold %s to cover", v.Quantity, v.Asset, v.FMV, v.CoverQuantity)
		}
		return fmt.Sprintf("Vested %s of %s at %s", v.Quantity, v.Asset, v.FMV)
	case capgains.Bonus:
		return fmt.Sprintf("Bonus issue of %s of %s", v.Quantity, v.Asset)
	case capgains.Split:
		return fmt.Sprintf("Split %s %d for %d", v.Asset, v.Numerator, v.Denominator)
	case capgains.Dividend:
		return fmt.Sprintf("Dividend of %s from %s", v.Amount, v.Asset)
	case capgains.Interest:
		return fmt.Sprintf("Interest of %s from %s", v.Amount, v.Asset)
	default:
		return string(tx.What())
	}
}
