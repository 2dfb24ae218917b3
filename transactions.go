package capgains

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeclare      CommandType = "declare"
	CmdBuy          CommandType = "buy"
	CmdSell         CommandType = "sell"
	CmdContribution CommandType = "contribution"
	CmdEspp         CommandType = "espp"
	CmdVest         CommandType = "vest"
	CmdBonus        CommandType = "bonus"
	CmdSplit        CommandType = "split"
	CmdDividend     CommandType = "dividend"
	CmdInterest     CommandType = "interest"
)

// Transaction defines the common interface for all financial facts recorded
// in the ledger. Transactions are immutable once appended; derived lots and
// gain records always recompute from them.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date.IsZero() {
		t.Date = Today()
	}
}

// assetCmd is a component for asset-based transactions.
type assetCmd struct {
	baseCmd
	Asset string `json:"asset"` // Asset is the ticker of the asset involved in the transaction.
}

func (t assetCmd) asset() string { return t.Asset }

// Validate checks the asset command fields: the base command, and that the
// ticker resolves to a declared asset.
func (t *assetCmd) Validate(ledger *Ledger) error {
	t.baseCmd.Validate()
	if t.Asset == "" {
		return errors.New("asset ticker is missing")
	}
	if ledger.Asset(t.Asset) == nil {
		return fmt.Errorf("asset %q not declared in ledger", t.Asset)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for assetCmd.
func (t assetCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("asset", t.Asset)
	return w.MarshalJSON()
}

// --- Declare Command ---

// Declare registers an asset and its classification attributes in the ledger.
// Every other transaction refers to the asset by its ticker.
type Declare struct {
	baseCmd
	Ticker    string        `json:"ticker"`
	Name      string        `json:"name,omitempty"`
	ISIN      string        `json:"isin,omitempty"`
	Category  AssetCategory `json:"category"`
	Sector    string        `json:"sector,omitempty"`
	Country   string        `json:"country,omitempty"`
	Currency  string        `json:"currency"`
	Portfolio string        `json:"portfolio,omitempty"`
	FMV2018   Money         `json:"fmv2018,omitzero"` // per-unit FMV on 31-Jan-2018
}

// NewDeclare creates a new Declare transaction.
func NewDeclare(day Date, memo string, asset Asset) Declare {
	fmv, _ := asset.FMV()
	return Declare{
		baseCmd:   baseCmd{Command: CmdDeclare, Date: day, Memo: memo},
		Ticker:    asset.Ticker(),
		Name:      asset.Name(),
		ISIN:      asset.ISIN(),
		Category:  asset.Category(),
		Sector:    asset.Sector(),
		Country:   asset.Country(),
		Currency:  asset.Currency(),
		Portfolio: asset.Portfolio(),
		FMV2018:   fmv,
	}
}

// MarshalJSON implements the json.Marshaler interface for Declare.
func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Optional("name", t.Name)
	w.Optional("isin", t.ISIN)
	w.Append("category", t.Category)
	w.Optional("sector", t.Sector)
	w.Optional("country", t.Country)
	w.Append("currency", t.Currency)
	w.Optional("portfolio", t.Portfolio)
	// the presence of a currency marks a recorded snapshot, even a zero one.
	if t.FMV2018.Currency() != "" {
		w.Append("fmv2018", t.FMV2018)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Declare.
func (t *Declare) UnmarshalJSON(data []byte) error {
	type plain Declare
	var temp plain
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Declare(temp)
	return nil
}

func (t Declare) Equal(other Transaction) bool {
	o, ok := other.(Declare)
	return ok && t.baseCmd == o.baseCmd && t.Ticker == o.Ticker && t.Name == o.Name &&
		t.ISIN == o.ISIN && t.Category == o.Category && t.Sector == o.Sector &&
		t.Country == o.Country && t.Currency == o.Currency && t.Portfolio == o.Portfolio &&
		t.FMV2018.Equal(o.FMV2018)
}

// NewAsset materializes the declared asset.
func (t Declare) NewAsset() Asset {
	a := NewAsset(t.Ticker, t.Name, t.ISIN, t.Category, t.Sector, t.Country, t.Currency)
	if t.Portfolio != "" {
		a = a.WithPortfolio(t.Portfolio)
	}
	if t.FMV2018.Currency() != "" {
		a = a.WithFMV(t.FMV2018)
	}
	return a
}

// Validate checks the Declare transaction's fields.
func (t Declare) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	if t.Ticker == "" {
		return t, errors.New("declaration ticker is missing")
	}
	if _, err := ParseAssetCategory(string(t.Category)); err != nil {
		return t, err
	}
	if t.Currency == "" {
		return t, errors.New("declaration currency is missing")
	}
	if t.FMV2018.Currency() != "" && t.FMV2018.Currency() != t.Currency {
		return t, fmt.Errorf("fmv2018 currency %s does not match asset currency %s", t.FMV2018.Currency(), t.Currency)
	}
	if ledger.Asset(t.Ticker) != nil {
		return t, fmt.Errorf("asset %q already declared in ledger", t.Ticker)
	}
	return t, nil
}

// --- Buy Command ---

// Buy records the purchase of a quantity of an asset for a total amount.
// Fees, when present, are part of the acquisition cost.
type Buy struct {
	assetCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Amount   Money    // Amount is the total cost of the purchase.
	Fees     Money    // Fees is the brokerage and taxes charged on top.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, memo, asset string, quantity Quantity, amount, fees Money) Buy {
	return Buy{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		Amount:   amount,
		Fees:     fees,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Amount)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// It handles the custom structure where amount and currency are separate fields.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
		Fees     Money    `json:"fees"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.Amount = temp.Money()
	t.Fees = temp.Fees
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) &&
		t.Amount.Equal(o.Amount) && t.Fees.Equal(o.Fees)
}

// Validate checks the Buy transaction's fields. It ensures that the quantity
// and amount are positive and fixes a missing currency from the asset's.
func (t Buy) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("buy transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("buy transaction amount must be positive, got %s", t.Amount)
	}
	var err error
	if t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	if t.Fees, err = fixCurrency(t.Fees, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	return t, nil
}

// --- Sell Command ---

// Sell records the disposal of a quantity of an asset for a total amount.
// Fees, when present, reduce the net sale proceeds.
type Sell struct {
	assetCmd
	Quantity Quantity // Quantity is the number of shares or units sold.
	Amount   Money    // Amount is the total proceeds from the sale.
	Fees     Money    // Fees is the brokerage and taxes charged on the sale.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, asset string, quantity Quantity, amount, fees Money) Sell {
	return Sell{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		Amount:   amount,
		Fees:     fees,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Amount)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
		Fees     Money    `json:"fees"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.Amount = temp.Money()
	t.Fees = temp.Fees
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) &&
		t.Amount.Equal(o.Amount) && t.Fees.Equal(o.Fees)
}

// Validate checks the Sell transaction's fields. The authoritative
// insufficient-holdings check happens during lot replay; this one gives
// early feedback on the position as of the sale date.
func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("sell transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("sell transaction amount must be positive, got %s", t.Amount)
	}
	var err error
	if t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	if t.Fees, err = fixCurrency(t.Fees, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	pos, err := ledger.Position(t.Asset, t.Date)
	if err != nil {
		return t, fmt.Errorf("cannot verify holdings of %s: %w", t.Asset, err)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot sell %s of %s, position is only %s", t.Date, t.Quantity, t.Asset, pos)
	}
	return t, nil
}

// --- Contribution Command ---

// Contribution records a deposit into a unit-less account (PPF, fixed
// deposit). It opens a lot of one unit per currency unit so that balances
// and Schedule FA positions derive from the same replay as everything else.
type Contribution struct {
	assetCmd
	Amount Money
}

// NewContribution creates a new Contribution transaction.
func NewContribution(day Date, memo, asset string, amount Money) Contribution {
	return Contribution{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdContribution, Date: day, Memo: memo}, Asset: asset},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Contribution.
func (t Contribution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Contribution.
func (t *Contribution) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Amount = temp.Money()
	return nil
}

func (t Contribution) Equal(other Transaction) bool {
	o, ok := other.(Contribution)
	return ok && t.assetCmd == o.assetCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Contribution transaction's fields.
func (t Contribution) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("contribution amount must be positive, got %s", t.Amount)
	}
	var err error
	t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset))
	return t, err
}

// --- Espp Command ---

// Espp records an employee stock purchase. The amount is what the employee
// paid; the per-unit FMV at purchase, when present, is the acquisition cost
// basis (the discount is taxed as salary, not as capital gain).
type Espp struct {
	assetCmd
	Quantity Quantity
	Amount   Money // Amount is the discounted price actually paid.
	FMV      Money // FMV is the per-unit fair market value at purchase.
}

// NewEspp creates a new Espp transaction.
func NewEspp(day Date, memo, asset string, quantity Quantity, amount, fmv Money) Espp {
	return Espp{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdEspp, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		Amount:   amount,
		FMV:      fmv,
	}
}

// MarshalJSON implements the json.Marshaler interface for Espp.
func (t Espp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Amount)
	if !t.FMV.IsZero() {
		w.Append("fmv", t.FMV)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Espp.
func (t *Espp) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
		FMV      Money    `json:"fmv"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.Amount = temp.Money()
	t.FMV = temp.FMV
	return nil
}

func (t Espp) Equal(other Transaction) bool {
	o, ok := other.(Espp)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) &&
		t.Amount.Equal(o.Amount) && t.FMV.Equal(o.FMV)
}

// CostBasis returns the total acquisition cost of the purchased lot.
func (t Espp) CostBasis() Money {
	if !t.FMV.IsZero() {
		return t.FMV.Mul(t.Quantity)
	}
	return t.Amount
}

// Validate checks the Espp transaction's fields.
func (t Espp) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("espp transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("espp transaction amount must be positive, got %s", t.Amount)
	}
	var err error
	if t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	if t.FMV, err = fixCurrency(t.FMV, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	return t, nil
}

// --- Vest Command ---

// Vest records an RSU vesting event. The vested lot's unit cost is the fair
// market value at vest, never zero. A sell-to-cover, when present, is part
// of the same submitted transaction and expands into an immediate disposal
// during replay, so a vest can never be applied without its covering sale.
type Vest struct {
	assetCmd
	Quantity      Quantity // Quantity is the number of shares vested (gross).
	FMV           Money    // FMV is the per-unit fair market value at vest.
	CoverQuantity Quantity // CoverQuantity is the number of shares sold to cover taxes.
	CoverAmount   Money    // CoverAmount is the total proceeds of the covering sale.
}

// NewVest creates a new Vest transaction without sell-to-cover.
func NewVest(day Date, memo, asset string, quantity Quantity, fmv Money) Vest {
	return Vest{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdVest, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		FMV:      fmv,
	}
}

// NewVestSellToCover creates a Vest with an embedded covering sale.
func NewVestSellToCover(day Date, memo, asset string, quantity Quantity, fmv Money, coverQty Quantity, coverAmount Money) Vest {
	v := NewVest(day, memo, asset, quantity, fmv)
	v.CoverQuantity = coverQty
	v.CoverAmount = coverAmount
	return v
}

// MarshalJSON implements the json.Marshaler interface for Vest.
func (t Vest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.Append("fmv", t.FMV)
	if !t.CoverQuantity.IsZero() {
		w.Append("coverQuantity", t.CoverQuantity)
		w.Append("coverAmount", t.CoverAmount)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Vest.
func (t *Vest) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		Quantity      Quantity `json:"quantity"`
		FMV           Money    `json:"fmv"`
		CoverQuantity Quantity `json:"coverQuantity"`
		CoverAmount   Money    `json:"coverAmount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.FMV = temp.FMV
	t.CoverQuantity = temp.CoverQuantity
	t.CoverAmount = temp.CoverAmount
	return nil
}

func (t Vest) Equal(other Transaction) bool {
	o, ok := other.(Vest)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) &&
		t.FMV.Equal(o.FMV) && t.CoverQuantity.Equal(o.CoverQuantity) &&
		t.CoverAmount.Equal(o.CoverAmount)
}

// SellsToCover reports whether the vest embeds a covering sale.
func (t Vest) SellsToCover() bool { return !t.CoverQuantity.IsZero() }

// Validate checks the Vest transaction's fields.
func (t Vest) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("vest transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.FMV.IsPositive() {
		return t, fmt.Errorf("vest transaction requires a positive per-unit FMV, got %s", t.FMV)
	}
	var err error
	if t.FMV, err = fixCurrency(t.FMV, ledger.Asset(t.Asset)); err != nil {
		return t, err
	}
	if t.SellsToCover() {
		if t.CoverQuantity.GreaterThan(t.Quantity) {
			return t, fmt.Errorf("sell-to-cover quantity %s exceeds vested quantity %s", t.CoverQuantity, t.Quantity)
		}
		if !t.CoverAmount.IsPositive() {
			return t, fmt.Errorf("sell-to-cover amount must be positive, got %s", t.CoverAmount)
		}
		if t.CoverAmount, err = fixCurrency(t.CoverAmount, ledger.Asset(t.Asset)); err != nil {
			return t, err
		}
	}
	return t, nil
}

// --- Bonus Command ---

// Bonus records a bonus share issuance: a new zero-cost lot dated at the
// bonus event.
type Bonus struct {
	assetCmd
	Quantity Quantity
}

// NewBonus creates a new Bonus transaction.
func NewBonus(day Date, memo, asset string, quantity Quantity) Bonus {
	return Bonus{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBonus, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
	}
}

// MarshalJSON implements the json.Marshaler interface for Bonus.
func (t Bonus) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Bonus.
func (t *Bonus) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	return nil
}

func (t Bonus) Equal(other Transaction) bool {
	o, ok := other.(Bonus)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity)
}

// Validate checks the Bonus transaction's fields.
func (t Bonus) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("bonus transaction quantity must be positive, got %s", t.Quantity)
	}
	return t, nil
}

// --- Split Command ---

// Split represents a stock split event for an asset. A 2-for-1 split has
// numerator 2 and denominator 1.
type Split struct {
	assetCmd
	Numerator   int64 `json:"num"`
	Denominator int64 `json:"den"`
}

// NewSplit creates a new Split transaction.
func NewSplit(day Date, asset string, num, den int64) Split {
	return Split{
		assetCmd:    assetCmd{baseCmd: baseCmd{Command: CmdSplit, Date: day}, Asset: asset},
		Numerator:   num,
		Denominator: den,
	}
}

// MarshalJSON implements the json.Marshaler interface for Split.
func (t Split) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("num", t.Numerator)
	w.Append("den", t.Denominator)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Split.
func (t *Split) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		Numerator   int64 `json:"num"`
		Denominator int64 `json:"den"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Denominator == 0 {
		temp.Denominator = 1
	}
	t.assetCmd = temp.assetCmd
	t.Numerator = temp.Numerator
	t.Denominator = temp.Denominator
	return nil
}

func (t Split) Equal(other Transaction) bool {
	o, ok := other.(Split)
	return ok && t.assetCmd == o.assetCmd && t.Numerator == o.Numerator && t.Denominator == o.Denominator
}

// Validate checks the Split transaction's fields.
func (t Split) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if t.Numerator <= 0 {
		return t, fmt.Errorf("split numerator must be positive, got %d", t.Numerator)
	}
	if t.Denominator <= 0 {
		return t, fmt.Errorf("split denominator must be positive, got %d", t.Denominator)
	}
	return t, nil
}

// --- Dividend Command ---

// Dividend records a dividend payment received for a held asset, as a total
// amount.
type Dividend struct {
	assetCmd
	Amount Money
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, memo, asset string, amount Money) Dividend {
	return Dividend{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Asset: asset},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Amount = temp.Money()
	return nil
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.assetCmd == o.assetCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Dividend transaction's fields.
func (t Dividend) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, errors.New("dividend must have a positive amount")
	}
	var err error
	t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset))
	return t, err
}

// --- Interest Command ---

// Interest records a bond coupon or an interest credit on a deposit account.
// Like dividends it never touches lots.
type Interest struct {
	assetCmd
	Amount Money
}

// NewInterest creates a new Interest transaction.
func NewInterest(day Date, memo, asset string, amount Money) Interest {
	return Interest{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdInterest, Date: day, Memo: memo}, Asset: asset},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Interest.
func (t Interest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Interest.
func (t *Interest) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Amount = temp.Money()
	return nil
}

func (t Interest) Equal(other Transaction) bool {
	o, ok := other.(Interest)
	return ok && t.assetCmd == o.assetCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Interest transaction's fields.
func (t Interest) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(ledger); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, errors.New("interest must have a positive amount")
	}
	var err error
	t.Amount, err = fixCurrency(t.Amount, ledger.Asset(t.Asset))
	return t, err
}

// fixCurrency defaults a missing currency to the asset's and rejects a
// mismatched one.
func fixCurrency(m Money, asset *Asset) (Money, error) {
	if m.Currency() == "" {
		return M(m.Decimal(), asset.Currency()), nil
	}
	if m.Currency() != asset.Currency() {
		return m, fmt.Errorf("transaction currency %s does not match asset currency %s", m.Currency(), asset.Currency())
	}
	return m, nil
}
