package model

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as plain JSON numbers (12.99, not "12.99").
	decimal.MarshalJSONWithoutQuotes = true
}

// Money parses a literal such as "8.99"; it panics on malformed input
// and is meant for constants.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
