package services

import (
	"fmt"
	"strings"
)

// FormatBRL formats an amount in Brazilian Real notation: thousands
// separated by dots, comma before the decimals, always 2 decimal places
// (e.g. R$ 1.234.567,89). Rounding happens only here, at presentation
// time, never inside the aggregator.
func FormatBRL(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R$ " + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a dot every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// FormatPercent renders a percentage with up to 2 decimals, trimming
// trailing zeros (e.g. "10%", "7,5%").
func FormatPercent(pct float64) string {
	s := fmt.Sprintf("%.2f", pct)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	s = strings.ReplaceAll(s, ".", ",")
	return s + "%"
}
