package pricing

import (
	"math"
	"strings"
)

// DefaultVatRate is the rate applied when a listing carries none.
const DefaultVatRate = 24

// Refundable parses the seller's VAT declaration. The listing form has
// historically sent both Estonian and English values.
func Refundable(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "jah", "yes", "true", "1":
		return true
	default:
		return false
	}
}

// Split computes the VAT amount and the VAT-inclusive total for a base
// (VAT-exclusive) price. A non-refundable listing carries no VAT: the total
// equals the entered price.
func Split(base, rate float64, refundable bool) (vatAmount, total float64) {
	if !refundable {
		return 0, base
	}
	vatAmount = base * rate / 100
	return vatAmount, base + vatAmount
}

// BaseFromTotal inverts Split for listings whose stored price already
// includes VAT, so the editable price field always shows the VAT-exclusive
// base. The genuine inversion is rounded to one decimal; without VAT the
// stored total is already the base and comes back untouched.
func BaseFromTotal(total, rate float64, refundable bool) float64 {
	if !refundable {
		return total
	}
	return round1(total / (1 + rate/100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
