// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
)

// locale is id-ID, used for month names and short dates.
const locale = monday.LocaleIdID

// FormatNumber groups thousands with "." and uses "," as the decimal mark.
// Fractions are kept up to three digits. The full digit string is grouped,
// so amounts beyond int64 print exactly.
// e.g., 1234567 -> "1.234.567", 1500.25 -> "1.500,25"
func FormatNumber(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatNumber(d.Neg())
	}
	d = d.Round(3)
	whole := d.Truncate(0)
	s := strings.ReplaceAll(humanize.BigComma(whole.BigInt()), ",", ".")
	if d.IsInteger() {
		return s
	}
	frac := strings.TrimRight(d.Sub(whole).StringFixed(3)[2:], "0")
	return s + "," + frac
}

// FormatRupiah formats an amount with the "Rp " currency prefix.
// e.g., 100000 -> "Rp 100.000"
func FormatRupiah(d decimal.Decimal) string {
	return "Rp " + FormatNumber(d)
}

// MonthTitle turns a YYYY-MM key into an upper-case header like "JANUARI 2024".
// Keys that do not parse are returned unchanged.
func MonthTitle(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return strings.ToUpper(monday.Format(t, "January 2006", locale))
}

// FormatDate renders a date the way the id-ID locale prints short dates.
// e.g., 2026-10-05 -> "5/10/2026"
func FormatDate(t time.Time) string {
	return monday.Format(t, "2/1/2006", locale)
}

// Truncate shortens s to limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
