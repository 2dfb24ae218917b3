package capgains

import (
	"errors"
	"testing"
)

func TestReplay_FIFO(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewBuy(D("2024-02-10"), "", "TCS", Q(10), R(2000), R(0)),
		NewSell(D("2024-03-10"), "", "TCS", Q(15), R(2250), R(0)),
	)

	book, err := ledger.Replay("TCS", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	matches := book.Matches()
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	// oldest lot consumed in full first.
	if !matches[0].Quantity.Equal(Q(10)) || matches[0].Acquired != D("2024-01-10") {
		t.Errorf("first match = %s from %s, want 10 from 2024-01-10", matches[0].Quantity, matches[0].Acquired)
	}
	if !matches[0].UnitCost.Equal(R(100)) {
		t.Errorf("first match unit cost = %s, want 100", matches[0].UnitCost)
	}
	if !matches[1].Quantity.Equal(Q(5)) || matches[1].Acquired != D("2024-02-10") {
		t.Errorf("second match = %s from %s, want 5 from 2024-02-10", matches[1].Quantity, matches[1].Acquired)
	}
	if !matches[1].UnitCost.Equal(R(200)) {
		t.Errorf("second match unit cost = %s, want 200", matches[1].UnitCost)
	}

	// both matches carry the disposal's own unit proceeds.
	for i, m := range matches {
		if !m.UnitProceeds.Equal(R(150)) {
			t.Errorf("match %d unit proceeds = %s, want 150", i, m.UnitProceeds)
		}
	}

	if got := book.OpenQuantity(); !got.Equal(Q(5)) {
		t.Errorf("OpenQuantity() = %s, want 5", got)
	}
	if got := book.OpenCost(); !got.Equal(R(1000)) {
		t.Errorf("OpenCost() = %s, want 1000", got)
	}
}

func TestReplay_FeesProRated(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewBuy(D("2024-02-10"), "", "TCS", Q(10), R(2000), R(0)),
		NewSell(D("2024-03-10"), "", "TCS", Q(15), R(3000), R(150)),
	)

	book, err := ledger.Replay("TCS", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	matches := book.Matches()
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	// proceeds stay gross; fees ride along per unit.
	for i, m := range matches {
		if !m.UnitProceeds.Equal(R(200)) {
			t.Errorf("match %d unit proceeds = %s, want the gross 200", i, m.UnitProceeds)
		}
		if !m.UnitFees.Equal(R(10)) {
			t.Errorf("match %d unit fees = %s, want 10", i, m.UnitFees)
		}
	}
	if !matches[0].Fees().Equal(R(100)) || !matches[1].Fees().Equal(R(50)) {
		t.Errorf("match fees = %s and %s, want 100 and 50", matches[0].Fees(), matches[1].Fees())
	}
	if !matches[0].Proceeds().Equal(R(2000)) {
		t.Errorf("first match proceeds = %s, want the gross 2000", matches[0].Proceeds())
	}
}

func TestReplay_InsufficientHoldings(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSell(D("2024-03-10"), "", "TCS", Q(25), R(5000), R(0)),
	)

	_, err := ledger.Replay("TCS", D("2024-12-31"))
	var insufficient *InsufficientHoldingsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Replay() error = %v, want InsufficientHoldingsError", err)
	}
	if !insufficient.Requested.Equal(Q(25)) || !insufficient.Open.Equal(Q(10)) {
		t.Errorf("error reports %s requested with %s open, want 25 and 10", insufficient.Requested, insufficient.Open)
	}
}

// A ledger whose history already oversells cannot report any position; the
// replay failure must reach the caller instead of degrading to a zero balance.
func TestPosition_SurfacesReplayError(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSell(D("2024-02-10"), "", "TCS", Q(20), R(4000), R(0)),
	)

	_, err := ledger.Position("TCS", D("2024-12-31"))
	var insufficient *InsufficientHoldingsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Position() error = %v, want InsufficientHoldingsError", err)
	}
	if !insufficient.Requested.Equal(Q(20)) {
		t.Errorf("error reports %s requested, want the corrupted entry's 20", insufficient.Requested)
	}
}

func TestSell_ValidateSurfacesReplayError(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSell(D("2024-02-10"), "", "TCS", Q(20), R(4000), R(0)),
	)

	// the new sale is fine by itself; the earlier oversell is the real cause
	// and must be what the validation error reports.
	_, err := ledger.Validate(NewSell(D("2024-06-01"), "", "TCS", Q(5), R(1000), R(0)))
	var insufficient *InsufficientHoldingsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Validate() error = %v, want the underlying InsufficientHoldingsError", err)
	}
	if !insufficient.Requested.Equal(Q(20)) {
		t.Errorf("error reports %s requested, want the corrupted entry's 20, not the new sale's 5", insufficient.Requested)
	}
}

func TestReplay_UndeclaredAsset(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Replay("GHOST", D("2024-12-31")); err == nil {
		t.Error("Replay() on an undeclared asset must fail")
	}
}

func TestReplay_Split(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSplit(D("2024-02-01"), "TCS", 2, 1),
		NewSell(D("2024-03-10"), "", "TCS", Q(5), R(400), R(0)),
	)

	book, err := ledger.Replay("TCS", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	matches := book.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	// acquisition date survives the split, the unit cost is rescaled.
	if m.Acquired != D("2024-01-10") {
		t.Errorf("match acquired = %s, want the original buy date", m.Acquired)
	}
	if !m.UnitCost.Equal(R(50)) {
		t.Errorf("match unit cost = %s, want 50 after a 2-for-1 split", m.UnitCost)
	}
	if !m.Adjusted {
		t.Error("match on a split lot must be flagged adjusted")
	}
	if got := book.OpenQuantity(); !got.Equal(Q(15)) {
		t.Errorf("OpenQuantity() = %s, want 15", got)
	}
	// total cost is preserved: 15 open units at 50.
	if got := book.OpenCost(); !got.Equal(R(750)) {
		t.Errorf("OpenCost() = %s, want 750", got)
	}
}

func TestReplay_SplitSkipsClosedLots(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSell(D("2024-02-01"), "", "TCS", Q(10), R(1500), R(0)),
		NewBuy(D("2024-03-01"), "", "TCS", Q(10), R(1200), R(0)),
		NewSplit(D("2024-04-01"), "TCS", 2, 1),
	)

	book, err := ledger.Replay("TCS", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if got := book.OpenQuantity(); !got.Equal(Q(20)) {
		t.Errorf("OpenQuantity() = %s, want 20", got)
	}
	// the consumed first lot is untouched by the split.
	if !book.Matches()[0].Quantity.Equal(Q(10)) {
		t.Errorf("closed lot match quantity changed: %s", book.Matches()[0].Quantity)
	}
}

func TestReplay_Bonus(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewBonus(D("2024-02-01"), "", "TCS", Q(10)),
		NewSell(D("2024-03-10"), "", "TCS", Q(15), R(3000), R(0)),
	)

	book, err := ledger.Replay("TCS", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	matches := book.Matches()
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	// the bonus lot is its own zero-cost lot dated at the bonus event.
	bonus := matches[1]
	if bonus.Acquired != D("2024-02-01") {
		t.Errorf("bonus match acquired = %s, want the bonus date", bonus.Acquired)
	}
	if !bonus.UnitCost.IsZero() {
		t.Errorf("bonus match unit cost = %s, want zero", bonus.UnitCost)
	}
	if !bonus.Adjusted {
		t.Error("bonus match must be flagged adjusted")
	}
}

func TestReplay_VestSellToCover(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeclare(D("2024-01-01"), "", NewAsset("ACME", "Acme Corp", "", Stock, "", "US", "USD")),
		NewVestSellToCover(D("2024-02-15"), "", "ACME", Q(100), USD(10), Q(40), USD(400)),
	)

	book, err := ledger.Replay("ACME", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	matches := book.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	// the covering sale matches the vested lot itself, at the vest FMV cost.
	if !m.Quantity.Equal(Q(40)) || !m.UnitCost.Equal(USD(10)) || !m.UnitProceeds.Equal(USD(10)) {
		t.Errorf("cover match = %s at cost %s proceeds %s, want 40 at 10 and 10", m.Quantity, m.UnitCost, m.UnitProceeds)
	}
	if m.Acquired != D("2024-02-15") || m.Disposed != D("2024-02-15") {
		t.Error("cover match must be same-day")
	}
	if got := book.OpenQuantity(); !got.Equal(Q(60)) {
		t.Errorf("OpenQuantity() = %s, want 60", got)
	}
}

func TestReplay_Contribution(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "PPF-SBI", PPF),
		NewContribution(D("2024-04-05"), "", "PPF-SBI", R(50000)),
		NewInterest(D("2025-03-31"), "", "PPF-SBI", R(3550)),
	)

	book, err := ledger.Replay("PPF-SBI", D("2025-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	// one unit per rupee, interest never touches lots.
	if got := book.OpenQuantity(); !got.Equal(Q(50000)) {
		t.Errorf("OpenQuantity() = %s, want 50000", got)
	}
	if got := book.OpenCost(); !got.Equal(R(50000)) {
		t.Errorf("OpenCost() = %s, want 50000", got)
	}
}

func TestReplay_EsppFMVBasis(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeclare(D("2024-01-01"), "", NewAsset("ACME", "Acme Corp", "", Stock, "", "US", "USD")),
		NewEspp(D("2024-02-15"), "", "ACME", Q(10), USD(85), USD(10)),
	)

	book, err := ledger.Replay("ACME", D("2024-12-31"))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	// cost basis is FMV x quantity, not the discounted price paid.
	if got := book.OpenCost(); !got.Equal(USD(100)) {
		t.Errorf("OpenCost() = %s, want 100", got)
	}
}
