package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/moongift/internal/domain/product"
)

func item(price string, discount, quantity int) *CartItem {
	return &CartItem{
		Quantity: quantity,
		Product: &product.Product{
			Price:              decimal.RequireFromString(price),
			DiscountPercentage: discount,
		},
	}
}

func TestCart_Totals(t *testing.T) {
	c := NewCart(1)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())

	c.Items = append(c.Items, item("1000.00", 10, 2), item("500.00", 0, 1))

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "2300.00", c.TotalPrice().StringFixed(2))
	assert.Equal(t, "1800.00", c.Items[0].Subtotal().StringFixed(2))
}

func TestCartItem_Increase(t *testing.T) {
	t.Run("累加", func(t *testing.T) {
		i := &CartItem{Quantity: 2}
		i.Increase(3)
		assert.Equal(t, 5, i.Quantity)
	})

	t.Run("超过99截断", func(t *testing.T) {
		i := &CartItem{Quantity: 95}
		i.Increase(10)
		assert.Equal(t, MaxQuantity, i.Quantity)
	})
}

func TestValidateQuantity(t *testing.T) {
	for _, q := range []int{0, -1, 100} {
		assert.ErrorIs(t, ValidateQuantity(q), ErrInvalidQuantity, "quantity=%d", q)
	}
	for _, q := range []int{1, 50, 99} {
		assert.NoError(t, ValidateQuantity(q), "quantity=%d", q)
	}
}

func TestCartItem_UnitPriceWithoutProduct(t *testing.T) {
	i := &CartItem{Quantity: 3}
	assert.True(t, i.Subtotal().IsZero())
}
