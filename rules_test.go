package capgains

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatutoryRules_Classify(t *testing.T) {
	rules := StatutoryRules()

	tests := []struct {
		name     string
		category AssetCategory
		acquired string
		disposed string
		wantTerm Term
		wantRule string
	}{
		// equity, 12-month threshold
		{"equity long held", Stock, "2017-05-01", "2024-06-01", LongTerm, "equity"},
		{"equity short held", Stock, "2024-01-01", "2024-06-01", ShortTerm, "equity"},
		{"equity same day", Stock, "2024-06-01", "2024-06-01", ShortTerm, "equity"},
		{"equity exactly 365 days", EquityFund, "2023-01-01", "2024-01-01", ShortTerm, "equity"},
		{"equity 366 days", EquityFund, "2023-01-01", "2024-01-02", LongTerm, "equity"},
		// the rationalised regime starts at the disposal cutover, not before
		{"equity disposed day before cutover", Stock, "2020-01-01", "2024-07-22", LongTerm, "equity"},
		{"equity disposed on cutover", Stock, "2020-01-01", "2024-07-23", LongTerm, "equity-rationalised"},
		// debt units acquired on or after 1-Apr-2023 never go long-term
		{"reclassified debt after a decade", DebtFund, "2023-04-01", "2033-06-01", ShortTerm, "debt-reclassified"},
		{"reclassified debt day two", DebtFund, "2023-04-02", "2026-01-01", ShortTerm, "debt-reclassified"},
		// older debt units, 24-month threshold after the rate cutover
		{"old debt rationalised long", DebtFund, "2023-03-01", "2026-01-01", LongTerm, "debt-rationalised"},
		{"old debt rationalised short", DebtFund, "2023-03-31", "2024-08-01", ShortTerm, "debt-rationalised"},
		// older debt units disposed before the cutover, 36-month threshold
		{"old debt short of 36 months", DebtFund, "2021-01-01", "2023-06-01", ShortTerm, "debt"},
		{"old debt past 36 months", DebtFund, "2020-01-01", "2023-06-01", LongTerm, "debt"},
		// listed bonds keep the 12-month threshold in both regimes
		{"bond long", Bond, "2023-01-01", "2024-08-01", LongTerm, "listed-bond-rationalised"},
		{"bond short pre-cutover", Bond, "2024-01-01", "2024-07-01", ShortTerm, "listed-bond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, rule, err := rules.Classify(tt.category, D(tt.acquired), D(tt.disposed))
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if term != tt.wantTerm {
				t.Errorf("Classify() term = %s, want %s", term, tt.wantTerm)
			}
			if rule.Name != tt.wantRule {
				t.Errorf("Classify() rule = %s, want %s", rule.Name, tt.wantRule)
			}
		})
	}
}

func TestStatutoryRules_UnmappedCategory(t *testing.T) {
	rules := StatutoryRules()
	_, _, err := rules.Classify(FixedDeposit, D("2020-01-01"), D("2024-06-01"))
	var noRule *NoRuleError
	if !errors.As(err, &noRule) {
		t.Fatalf("Classify() error = %v, want NoRuleError", err)
	}
	if noRule.Category != FixedDeposit {
		t.Errorf("NoRuleError category = %s, want %s", noRule.Category, FixedDeposit)
	}
}

func TestRule_Labels(t *testing.T) {
	rules := StatutoryRules()

	tests := []struct {
		category AssetCategory
		acquired string
		disposed string
		want     string
	}{
		{Stock, "2024-01-01", "2024-06-01", "STCG 15%"},
		{Stock, "2024-01-01", "2024-08-01", "STCG 20%"},
		{Stock, "2017-05-01", "2024-06-01", "LTCG 10%"},
		{Stock, "2017-05-01", "2024-08-01", "LTCG 12.5%"},
		{DebtFund, "2023-06-01", "2024-08-01", "slab"},
		{DebtFund, "2020-01-01", "2023-06-01", "LTCG 20% indexed"},
	}
	for _, tt := range tests {
		term, rule, err := rules.Classify(tt.category, D(tt.acquired), D(tt.disposed))
		if err != nil {
			t.Fatalf("Classify(%s, %s, %s) error = %v", tt.category, tt.acquired, tt.disposed, err)
		}
		if got := rule.Label(term); got != tt.want {
			t.Errorf("Label(%s, %s, %s) = %q, want %q", tt.category, tt.acquired, tt.disposed, got, tt.want)
		}
	}
}

func TestRule_Rate(t *testing.T) {
	rules := StatutoryRules()

	// short-term equity has a statutory rate.
	term, rule, err := rules.Classify(Stock, D("2024-01-01"), D("2024-06-01"))
	if err != nil {
		t.Fatal(err)
	}
	rate, ok := rule.Rate(term)
	if !ok || !rate.Equal(decimal.NewFromInt(15)) {
		t.Errorf("equity short rate = %s ok=%v, want 15 true", rate, ok)
	}

	// reclassified debt is taxed at the caller's slab rate.
	term, rule, err = rules.Classify(DebtFund, D("2023-06-01"), D("2024-08-01"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rule.Rate(term); ok {
		t.Error("slab-taxed gains must report no statutory rate")
	}
}
