package core

// DefaultCurrency is used when no preference has been stored yet.
const DefaultCurrency = "INR"

// currencySymbols maps the supported preference codes to display symbols.
// This is formatting metadata only; stored amounts are never converted.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// SymbolFor returns the display symbol for a currency code, defaulting to
// "$" for unrecognized codes.
func SymbolFor(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return "$"
}

// KnownCurrency reports whether code is one of the supported preferences.
func KnownCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}
