// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a dollar amount with two decimals and thousands
// separators, e.g. 1234.5 -> "$1,234.50", -20 -> "-$20.00".
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + s
	}
	return sign + "$" + FormatNumber(n) + "." + frac
}

// FormatSignedMoney formats an amount for a transaction row: income
// prefixed with "+", expense with "-".
func FormatSignedMoney(v float64, income bool) string {
	if income {
		return "+" + FormatMoney(v)
	}
	return "-" + FormatMoney(v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole-number percentage, e.g. 87 -> "87%".
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatShare formats a one-decimal share, e.g. 75 -> "75.0%".
func FormatShare(share float64) string {
	return fmt.Sprintf("%.1f%%", share)
}

// FormatRemaining renders the budget card footer: "Remaining: $X" or
// "Over by $X".
func FormatRemaining(remaining float64) string {
	if remaining < 0 {
		return "Over by " + FormatMoney(-remaining)
	}
	return "Remaining: " + FormatMoney(remaining)
}

// Truncate shortens s to at most n runes, ending in "…" when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
