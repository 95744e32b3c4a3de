// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as dollars with thousands separators
// and exactly two decimal places. Rounding goes through decimal so that
// display values match the web front-end bit for bit.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	if negative {
		d = d.Neg()
	}

	str := d.StringFixed(2)
	parts := strings.Split(str, ".")
	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	return groupThousands(s[:n-3]) + "," + s[n-3:]
}

// FormatPercent formats a percentage with a sign for positive values.
func FormatPercent(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// FormatGreek formats a greek value with four decimal places.
func FormatGreek(value float64) string {
	return decimal.NewFromFloat(value).Round(4).StringFixed(4)
}

// FormatDays formats a day count.
func FormatDays(days float64) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%g days", days)
}
