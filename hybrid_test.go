package capgains

import "testing"

func TestKeywordDetector(t *testing.T) {
	detector := KeywordDetector{}

	tests := []struct {
		name          string
		asset         Asset
		wantHybrid    bool
		wantHeuristic bool
	}{
		{
			name:          "explicit equity fund",
			asset:         NewAsset("EQ", "Some Fund", "", EquityFund, "", "IN", "INR"),
			wantHybrid:    true,
			wantHeuristic: false,
		},
		{
			name:          "explicit debt fund",
			asset:         NewAsset("DB", "Some Fund", "", DebtFund, "", "IN", "INR"),
			wantHybrid:    false,
			wantHeuristic: false,
		},
		{
			name:          "balanced advantage in name",
			asset:         NewAsset("BAF", "HDFC Balanced Advantage Fund", "", MutualFund, "", "IN", "INR"),
			wantHybrid:    true,
			wantHeuristic: true,
		},
		{
			name:          "hybrid in sector text",
			asset:         NewAsset("HYB", "SBI Something Fund", "", MutualFund, "Hybrid Schemes", "IN", "INR"),
			wantHybrid:    true,
			wantHeuristic: true,
		},
		{
			name:          "arbitrage scheme",
			asset:         NewAsset("ARB", "Kotak Arbitrage Fund", "", MutualFund, "", "IN", "INR"),
			wantHybrid:    true,
			wantHeuristic: true,
		},
		{
			name:          "no marker falls to debt regime",
			asset:         NewAsset("LIQ", "Axis Liquid Fund", "", MutualFund, "", "IN", "INR"),
			wantHybrid:    false,
			wantHeuristic: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hybrid, heuristic := detector.IsHybrid(tt.asset)
			if hybrid != tt.wantHybrid || heuristic != tt.wantHeuristic {
				t.Errorf("IsHybrid() = (%v, %v), want (%v, %v)", hybrid, heuristic, tt.wantHybrid, tt.wantHeuristic)
			}
		})
	}
}
