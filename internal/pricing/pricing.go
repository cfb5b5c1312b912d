// Package pricing holds the storefront's promotion rules. Both values are
// placeholders carried over from the web storefront pending real promotion
// data from the backend; they are isolated here so replacing them touches
// one package.
package pricing

import "math"

const (
	// DisplayDiscountPercent is the strike-through discount shown on the
	// product detail page.
	DisplayDiscountPercent = 20
	// CartFlatDiscount is the flat per-line discount applied on cart-add
	CartFlatDiscount = 100.0
)

// DiscountedPrice returns the displayed price after the strike-through
// discount, rounded to the nearest rupee.
func DiscountedPrice(price float64) float64 {
	return math.Round(price - price*DisplayDiscountPercent/100)
}

// CartLine returns the discount and final price for a cart line:
// finalPrice = (unitPrice - flat discount) * quantity.
func CartLine(unitPrice float64, quantity int) (discount, finalPrice float64) {
	discount = CartFlatDiscount
	finalPrice = (unitPrice - discount) * float64(quantity)
	return discount, finalPrice
}
