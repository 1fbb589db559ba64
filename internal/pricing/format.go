package pricing

import "github.com/shopspring/decimal"

// FormatAmount renders a Money value with two decimal places for display.
// All arithmetic stays on whole int64 values; formatting happens only at
// the render boundary.
func FormatAmount(v Money) string {
	return decimal.NewFromInt(v).StringFixed(2)
}
