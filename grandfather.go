package capgains

// grandfatheredCost computes the acquisition cost used for a long-term
// equity match acquired before the grandfathering cutoff:
//
//	adjusted = max(original cost, min(FMV-at-cutoff x quantity, sale consideration))
//
// The min caps the benefit so the cost basis never exceeds the actual sale
// proceeds; the max preserves the true original cost as a floor.
func grandfatheredCost(original, fmvPerUnit Money, quantity Quantity, consideration Money) Money {
	fmvCost := fmvPerUnit.Mul(quantity)
	return Max(original, Min(fmvCost, consideration))
}

// qualifiesForGrandfathering reports whether a match on the asset falls under
// the statutory cost-basis override: a long-term gain on an equity-regime
// asset acquired before the cutoff.
func qualifiesForGrandfathering(equityRegime bool, term Term, acquired Date) bool {
	return equityRegime && term == LongTerm && acquired.Before(GrandfatheringCutoff)
}
