package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/capgains"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func day(s string) capgains.Date { return capgains.MustParseDate(s) }

func rupees(v float64) capgains.Money { return capgains.INR(v) }

// fixtureLedger mixes a grandfathered equity sale, a debt-fund sale and a
// foreign vest so that every section of the gains report is populated.
func fixtureLedger(t *testing.T) *capgains.Ledger {
	t.Helper()
	ledger := capgains.NewLedger()
	tcs := capgains.NewAsset("TCS", "Tata Consultancy", "INE467B01029", capgains.Stock, "IT", "IN", "INR").WithFMV(rupees(800))
	liq := capgains.NewAsset("LIQBEES", "Liquid ETF", "", capgains.DebtFund, "", "IN", "INR")
	acme := capgains.NewAsset("ACME", "Acme Corp", "US0000000001", capgains.Stock, "", "US", "USD")
	ledger.Append(
		capgains.NewDeclare(day("2017-01-01"), "", tcs),
		capgains.NewDeclare(day("2023-01-01"), "", liq),
		capgains.NewDeclare(day("2023-01-01"), "", acme),
		capgains.NewBuy(day("2017-05-01"), "", "TCS", capgains.Q(100), rupees(50000), rupees(0)),
		capgains.NewBuy(day("2023-05-01"), "", "LIQBEES", capgains.Q(1000), rupees(10000), rupees(0)),
		capgains.NewVest(day("2023-02-15"), "", "ACME", capgains.Q(100), capgains.M(10.0, "USD")),
		capgains.NewSell(day("2024-06-01"), "", "TCS", capgains.Q(100), rupees(120000), rupees(0)),
		capgains.NewSell(day("2024-08-01"), "", "LIQBEES", capgains.Q(1000), rupees(12000), rupees(0)),
		capgains.NewSell(day("2024-06-01"), "", "ACME", capgains.Q(30), capgains.M(360.0, "USD"), capgains.M(0.0, "USD")),
	)
	return ledger
}

// headings parses a markdown document and returns the text of every heading,
// in document order.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			out = append(out, string(h.Text(source)))
		}
		return ast.WalkContinue, nil
	})
	return out
}

// tableRows counts the data rows of the markdown table that follows the given
// heading, excluding the header and separator lines.
func tableRows(t *testing.T, md, heading string) int {
	t.Helper()
	lines := strings.Split(md, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "#") && strings.Contains(line, heading) {
			start = i
			break
		}
	}
	if start < 0 {
		t.Fatalf("heading %q not found", heading)
	}
	rows := 0
	inTable := false
	for _, line := range lines[start+1:] {
		switch {
		case strings.HasPrefix(line, "|:") || strings.HasPrefix(line, "|-"):
			inTable = true
		case strings.HasPrefix(line, "|"):
			if inTable {
				rows++
			}
		case inTable:
			return rows
		}
	}
	return rows
}

func TestGainsMarkdown(t *testing.T) {
	report, err := fixtureLedger(t).NewGainsReport(2024, capgains.GainsOptions{SlabRatePercent: 30})
	if err != nil {
		t.Fatalf("NewGainsReport() error = %v", err)
	}
	md := GainsMarkdown(report)

	got := headings(t, md)
	want := []string{
		"Capital Gains FY 2024-25 (AY 2025-26)",
		"Realized Gains",
		"Advance Tax Periods",
		"Schedule 112A",
		"Foreign Assets",
	}
	if len(got) != len(want) {
		t.Fatalf("headings = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}

	if n := tableRows(t, md, "Realized Gains"); n != 2 {
		t.Errorf("Realized Gains has %d rows, want 2", n)
	}
	if n := tableRows(t, md, "Schedule 112A"); n != 1 {
		t.Errorf("Schedule 112A has %d rows, want 1", n)
	}
	if n := tableRows(t, md, "Foreign Assets"); n != 1 {
		t.Errorf("Foreign Assets has %d rows, want 1", n)
	}

	// the grandfathered equity row carries the G flag.
	if !strings.Contains(md, "| G |") {
		t.Error("grandfathered record is not flagged")
	}
	// every advance-tax window label shows up in the matrix header.
	for i := 0; i < capgains.SubPeriodCount; i++ {
		if label := capgains.SubPeriodLabel(i); !strings.Contains(md, label) {
			t.Errorf("period label %q missing from the report", label)
		}
	}
}

func TestScheduleFAMarkdown(t *testing.T) {
	report, err := fixtureLedger(t).NewScheduleFAReport(2024)
	if err != nil {
		t.Fatalf("NewScheduleFAReport() error = %v", err)
	}
	md := ScheduleFAMarkdown(report)

	got := headings(t, md)
	if len(got) != 1 || got[0] != "Schedule FA CY 2024 (AY 2025-26)" {
		t.Fatalf("headings = %q", got)
	}
	if n := tableRows(t, md, "Schedule FA"); n != 1 {
		t.Errorf("Schedule FA has %d rows, want 1", n)
	}
	if !strings.Contains(md, "| ACME | US |") {
		t.Error("foreign asset row missing")
	}
}

func TestScheduleFAMarkdown_Empty(t *testing.T) {
	ledger := capgains.NewLedger()
	report, err := ledger.NewScheduleFAReport(2024)
	if err != nil {
		t.Fatalf("NewScheduleFAReport() error = %v", err)
	}
	md := ScheduleFAMarkdown(report)
	if !strings.Contains(md, "No foreign asset held during the year.") {
		t.Errorf("empty report renders as:\n%s", md)
	}
}

func TestLogMarkdown(t *testing.T) {
	ledger := fixtureLedger(t)
	window := capgains.NewRange(day("2024-01-01"), day("2024-12-31"))
	md := LogMarkdown(ledger, window)

	if n := tableRows(t, md, "Transactions"); n != 3 {
		t.Errorf("log has %d rows, want the 3 sales of 2024", n)
	}
	if !strings.Contains(md, "Sold 100 of TCS") {
		t.Errorf("log misses the TCS sale:\n%s", md)
	}
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		tx   capgains.Transaction
		want string
	}{
		{capgains.NewBuy(day("2024-01-10"), "", "TCS", capgains.Q(10), rupees(1000), rupees(0)), "Bought 10 of TCS for ₹1,000.00"},
		{capgains.NewBonus(day("2024-03-01"), "", "TCS", capgains.Q(10)), "Bonus issue of 10 of TCS"},
		{capgains.NewSplit(day("2024-04-01"), "TCS", 2, 1), "Split TCS 2 for 1"},
		{capgains.NewVestSellToCover(day("2024-02-15"), "", "ACME", capgains.Q(100), capgains.M(10.0, "USD"), capgains.Q(40), capgains.M(400.0, "USD")), "Vested 100 of ACME at $10.00, sold 40 to cover"},
	}
	for _, tt := range tests {
		if got := Transaction(tt.tx); got != tt.want {
			t.Errorf("Transaction() = %q, want %q", got, tt.want)
		}
	}
}
