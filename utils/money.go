package utils

import (
	"math"
	"strconv"
	"strings"
)

// Amounts from here on are formatted without cents; amount*100 stays well inside int64 below it
const maxCentsAmount = 1e16

// FormatAmount formats a price with comma thousands separators, like "12,500".
// Whole amounts print without decimals; others keep up to two.
func FormatAmount(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}

	neg := amount < 0
	if neg {
		amount = -amount
	}

	var s string
	var frac int64
	if amount >= maxCentsAmount {
		// The cent count would overflow int64; cents are meaningless at this size anyway
		s = strconv.FormatFloat(math.Round(amount), 'f', 0, 64)
	} else {
		cents := int64(math.Round(amount * 100))
		s = strconv.FormatInt(cents/100, 10)
		frac = cents % 100
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + decimals
	b.Grow(len(s) + len(s)/3 + 4)
	if neg && (s != "0" || frac != 0) {
		b.WriteByte('-')
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if frac != 0 {
		b.WriteByte('.')
		decimals := strconv.FormatInt(frac, 10)
		if frac < 10 {
			decimals = "0" + decimals
		}
		b.WriteString(strings.TrimRight(decimals, "0"))
	}
	return b.String()
}

// FormatPrice prefixes the formatted amount with the free-text currency label
func FormatPrice(currency string, amount float64) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return FormatAmount(amount)
	}
	return currency + " " + FormatAmount(amount)
}
