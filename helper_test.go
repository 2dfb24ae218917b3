package capgains

// R is a helper for tests to create rupee money from const.
func R(v float64) Money { return M(v, "INR") }

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// D is a helper for tests to build a date from its ISO string.
func D(s string) Date { return MustParseDate(s) }

// declINR declares a domestic asset with the bare minimum of attributes.
func declINR(on Date, ticker string, category AssetCategory) Declare {
	return NewDeclare(on, "", NewAsset(ticker, "", "", category, "", "IN", "INR"))
}
