package model

import (
	"math"
	"strconv"
)

// RoundCents converts a floating intermediate back to integer cents using
// round-half-away-from-zero. This is the single rounding rule for the whole
// service; percentage discounts and tax are the only two call sites that
// produce float intermediates.
// Examples: 49.5 → 50, -49.5 → -50, 49.4 → 49
func RoundCents(f float64) int64 {
	return int64(math.Round(f))
}

// FormatCents renders integer cents as a decimal currency string without
// a symbol. Used in coupon minimum-order messages.
// Examples: 5000 → "50.00", 599 → "5.99", -50 → "-0.50"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseCents converts decimal string amounts (dollars) to cents (int64).
// Use for inputs in major currency units (e.g., "99.00" = $99.00).
// Handles edge cases: empty strings, missing decimals, large values.
// Examples: "99.00" → 9900, "1234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f * 100))
}
