package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NowISO returns the current UTC time as a fixed-width RFC 3339 string.
// Timestamps are stored as strings so records sort chronologically under
// plain lexicographic comparison.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// FormatZAR renders a rand amount for display, e.g. 650 -> "R650",
// 1650 -> "R1 650". Fractions are rounded to whole rand.
func FormatZAR(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}
	n := int64(math.Round(value))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	if neg {
		return "R-" + b.String()
	}
	return "R" + b.String()
}

// FormatAmount renders a payment amount with two decimals, e.g. "650.00".
// Non-positive amounts collapse to "0.00".
func FormatAmount(value float64) string {
	if math.IsNaN(value) || value <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", value)
}
