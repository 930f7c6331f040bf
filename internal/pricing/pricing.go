package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// promoPercents is the client-known discount table. Applying a code is
// plain string matching: no server validation, no usage limits, no expiry.
var promoPercents = map[string]int64{
	"SAVE5":     5,
	"SAVE10":    10,
	"SAVE15":    15,
	"WELCOME20": 20,
}

// PromoPercent resolves a promo code to its flat percentage. Unknown codes
// resolve to zero discount.
func PromoPercent(code string) (int64, bool) {
	percent, ok := promoPercents[strings.ToUpper(strings.TrimSpace(code))]
	return percent, ok
}

// Discount computes the promo discount on a subtotal: subtotal × percent /
// 100, rounded half-up to whole taka.
func Discount(subtotal, percent int64) int64 {
	if subtotal <= 0 || percent <= 0 {
		return 0
	}
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// DiscountedPrice applies a percentage discount to a price:
// price − price × percent / 100, rounded half-up.
func DiscountedPrice(price, percent int64) int64 {
	return price - Discount(price, percent)
}

// Subtotal sums price × quantity over the given lines.
func Subtotal(lines []Line) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.Price * int64(line.Quantity)
	}
	return subtotal
}

// Line is the minimal shape Subtotal needs.
type Line struct {
	Price    int64
	Quantity int
}

// Total is the single order-total formula:
// subtotal − promoDiscount + shipping. It is recomputed everywhere it is
// needed; no stored total is trusted.
func Total(subtotal, promoDiscount, shipping int64) int64 {
	return subtotal - promoDiscount + shipping
}
