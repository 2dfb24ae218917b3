package capgains

import "strings"

// HybridDetector decides whether a fund-type asset without an explicit
// orientation tag should fall under the equity or the debt holding-period
// regime. It is isolated behind an interface so the free-text heuristic can
// be swapped for an explicit classification tag without touching the
// aggregator.
type HybridDetector interface {
	// IsHybrid reports whether the asset looks like a hybrid (equity-taxed)
	// scheme, and whether the verdict is heuristic rather than an explicit tag.
	IsHybrid(asset Asset) (hybrid, heuristic bool)
}

// hybridKeywords are matched case-insensitively against the asset's sector
// and name free text.
var hybridKeywords = []string{
	"hybrid",
	"balanced advantage",
	"balanced",
	"arbitrage",
	"equity & debt",
	"equity and debt",
	"aggressive",
	"multi asset",
	"other scheme",
}

// KeywordDetector is the free-text implementation of HybridDetector.
type KeywordDetector struct{}

// IsHybrid scans sector and name text for hybrid scheme markers. Assets with
// an explicit equity/debt category are answered without heuristics.
func (KeywordDetector) IsHybrid(asset Asset) (hybrid, heuristic bool) {
	switch asset.Category() {
	case EquityFund:
		return true, false
	case DebtFund:
		return false, false
	}
	text := strings.ToLower(asset.Sector() + " " + asset.Name())
	for _, kw := range hybridKeywords {
		if strings.Contains(text, kw) {
			return true, true
		}
	}
	return false, true
}
