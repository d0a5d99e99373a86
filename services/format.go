package services

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount with the currency symbol, thousands separators
// and exactly 2 decimal places (e.g. $12,345.60). Calculations keep full
// precision; rounding happens only for display here and when submissions
// store their derived totals as 2-decimal strings.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	negative := amount.IsNegative()

	raw := amount.Abs().StringFixed(2)
	intPart, decPart, _ := strings.Cut(raw, ".")

	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = humanize.Comma(n)
	}

	result := symbol + grouped + "." + decPart
	if negative && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a percentage with up to 2 decimals (7.5%).
func FormatPercent(p decimal.Decimal) string {
	return p.Round(2).String() + "%"
}
