package capgains

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_Roundtrip(t *testing.T) {
	tcs := NewAsset("TCS", "Tata Consultancy", "INE467B01029", Stock, "IT", "IN", "INR").WithFMV(R(800))
	acme := NewAsset("ACME", "Acme Corp", "", Stock, "", "US", "USD")
	// a recorded zero FMV must survive the roundtrip as a snapshot, not vanish.
	junk := NewAsset("JUNK", "Collapsed Ltd", "", Stock, "", "IN", "INR").WithFMV(R(0))

	ledger := NewLedger()
	ledger.Append(
		NewDeclare(D("2017-01-01"), "initial import", tcs),
		NewDeclare(D("2023-01-01"), "", acme),
		NewDeclare(D("2017-02-01"), "", junk),
		declINR(D("2023-01-02"), "PPF-SBI", PPF),
		NewBuy(D("2017-05-01"), "", "TCS", Q(100), R(50000), R(150)),
		NewSell(D("2024-06-01"), "booked profit", "TCS", Q(100), R(120000), R(300)),
		NewContribution(D("2023-04-05"), "", "PPF-SBI", R(50000)),
		NewEspp(D("2023-08-15"), "", "ACME", Q(10), USD(85), USD(10)),
		NewVestSellToCover(D("2024-02-15"), "", "ACME", Q(100), USD(10), Q(40), USD(400)),
		NewBonus(D("2024-03-01"), "", "TCS", Q(10)),
		NewSplit(D("2024-04-01"), "TCS", 2, 1),
		NewDividend(D("2024-05-01"), "", "TCS", R(1200)),
		NewInterest(D("2024-03-31"), "", "PPF-SBI", R(3550)),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	var want, got []Transaction
	for _, tx := range ledger.Transactions() {
		want = append(want, tx)
	}
	for _, tx := range decoded.Transactions() {
		got = append(got, tx)
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			t.Errorf("transaction %d does not survive the roundtrip:\nwant %#v\ngot  %#v", i, want[i], got[i])
		}
	}
}

// Encoding an unchanged ledger twice must yield a byte-identical file.
func TestEncodeLedger_Canonical(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		declINR(D("2024-01-01"), "TCS", Stock),
		NewBuy(D("2024-01-10"), "", "TCS", Q(10), R(1000), R(0)),
		NewSell(D("2024-06-01"), "", "TCS", Q(10), R(1500), R(0)),
	)

	var first, second bytes.Buffer
	if err := EncodeLedger(&first, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	if err := EncodeLedger(&second, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("encoding not canonical (-first +second):\n%s", diff)
	}
}

func TestDecodeLedger_SkipsEmptyLines(t *testing.T) {
	input := `{"command":"declare","date":"2024-01-01","ticker":"TCS","category":"stock","currency":"INR"}

{"command":"buy","date":"2024-01-10","asset":"TCS","quantity":10,"amount":1000,"currency":"INR"}
`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	count := 0
	for range ledger.Transactions() {
		count++
	}
	if count != 2 {
		t.Errorf("decoded %d transactions, want 2", count)
	}
}

func TestDecodeLedger_UnknownCommand(t *testing.T) {
	input := `{"command":"teleport","date":"2024-01-01"}`
	if _, err := DecodeLedger(strings.NewReader(input)); err == nil {
		t.Error("DecodeLedger() must fail on an unknown command")
	}
}

func TestDecodeLedger_SortsByDate(t *testing.T) {
	input := `{"command":"declare","date":"2024-01-01","ticker":"TCS","category":"stock","currency":"INR"}
{"command":"sell","date":"2024-06-01","asset":"TCS","quantity":5,"amount":600,"currency":"INR"}
{"command":"buy","date":"2024-01-10","asset":"TCS","quantity":10,"amount":1000,"currency":"INR"}
`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	var dates []string
	for _, tx := range ledger.Transactions() {
		dates = append(dates, tx.When().String())
	}
	want := []string{"2024-01-01", "2024-01-10", "2024-06-01"}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("transactions not sorted by date (-want +got):\n%s", diff)
	}
}
