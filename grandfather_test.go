package capgains

import "testing"

func TestGrandfatheredCost(t *testing.T) {
	tests := []struct {
		name          string
		original      Money
		fmvPerUnit    Money
		quantity      Quantity
		consideration Money
		want          Money
	}{
		// FMV cost within the consideration lifts the basis.
		{"fmv raises basis", R(1000), R(14), Q(100), R(2000), R(1400)},
		// consideration caps the FMV benefit.
		{"consideration caps fmv", R(1000), R(15), Q(100), R(1200), R(1200)},
		// the original cost is a floor, a loss is never manufactured.
		{"original cost floor", R(1000), R(8), Q(100), R(1200), R(1000)},
		{"capped below original", R(1000), R(15), Q(100), R(900), R(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grandfatheredCost(tt.original, tt.fmvPerUnit, tt.quantity, tt.consideration)
			if !got.Equal(tt.want) {
				t.Errorf("grandfatheredCost() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQualifiesForGrandfathering(t *testing.T) {
	tests := []struct {
		name     string
		equity   bool
		term     Term
		acquired string
		want     bool
	}{
		{"equity long-term before cutoff", true, LongTerm, "2018-01-30", true},
		{"acquired on cutoff day", true, LongTerm, "2018-01-31", false},
		{"acquired after cutoff", true, LongTerm, "2018-02-01", false},
		{"short-term", true, ShortTerm, "2017-05-01", false},
		{"debt regime", false, LongTerm, "2017-05-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualifiesForGrandfathering(tt.equity, tt.term, D(tt.acquired)); got != tt.want {
				t.Errorf("qualifiesForGrandfathering() = %v, want %v", got, tt.want)
			}
		})
	}
}
