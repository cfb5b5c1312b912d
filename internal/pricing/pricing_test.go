package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 400.0, DiscountedPrice(500))
	assert.Equal(t, 160.0, DiscountedPrice(200))
	assert.Equal(t, 0.0, DiscountedPrice(0))
	// Rounds to the nearest rupee
	assert.Equal(t, 100.0, DiscountedPrice(124.5))
}

func TestCartLine(t *testing.T) {
	discount, finalPrice := CartLine(500, 2)
	assert.Equal(t, 100.0, discount)
	assert.Equal(t, 800.0, finalPrice)

	discount, finalPrice = CartLine(100, 3)
	assert.Equal(t, 100.0, discount)
	assert.Equal(t, 0.0, finalPrice)
}
