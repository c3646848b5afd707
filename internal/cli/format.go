// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a signed amount with a currency symbol and comma
// separators. e.g., -1234.5 -> "-$1,234.50"
func FormatMoney(amount float64, symbol string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupDigits(whole), cents)
}

// FormatDelta formats a signed amount with an explicit leading + for
// inflows.
func FormatDelta(amount float64, symbol string) string {
	if amount > 0 {
		return "+" + FormatMoney(amount, symbol)
	}
	return FormatMoney(amount, symbol)
}

// FormatRate formats a per-day burn rate. Positive rates burn the balance
// down, so they render with a leading minus.
func FormatRate(ratePerDay float64, symbol string) string {
	if ratePerDay == 0 {
		return "—"
	}
	return FormatDelta(-ratePerDay, symbol) + "/day"
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
