package lots

import "github.com/shopspring/decimal"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// dec is a helper for test to create exact decimals from const
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// tr is a helper for test to create a trade with no date nor currency.
func tr(quantity, price float64) Trade { return NewTrade("", quantity, price) }

// NO is a helper for test to create money without currency from const
func NO(v float64) Money { return M(v, "") }
