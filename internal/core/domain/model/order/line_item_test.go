package order_test

import (
	"errors"
	"math"
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should compute subtotal", func(t *testing.T) {
		item, err := order.NewLineItem(productID, 3, 199, 15)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, int64(199), item.UnitPrice())
		assert.Equal(t, int64(15), item.DiscountPercent())
		assert.Equal(t, int64(597), item.Subtotal())
	})

	t.Run("should allow free products", func(t *testing.T) {
		item, err := order.NewLineItem(productID, 5, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), item.Subtotal())
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := order.NewLineItem(productID, quantity, 100, 0)

			var quantityErr *errs.InvalidQuantityError
			require.True(t, errors.As(err, &quantityErr))
			assert.Equal(t, productID.String(), quantityErr.ProductID)
			assert.Equal(t, quantity, quantityErr.Quantity)
			assert.Equal(t, errs.KindInvalidQuantity, errs.KindOf(err))
		}
	})

	t.Run("should reject negative price and discount", func(t *testing.T) {
		_, err := order.NewLineItem(productID, 1, -1, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidPricing)

		_, err = order.NewLineItem(productID, 1, 100, -5)
		assert.ErrorIs(t, err, errs.ErrInvalidPricing)
	})

	t.Run("should reject subtotal overflow", func(t *testing.T) {
		_, err := order.NewLineItem(productID, 2, math.MaxInt64/2+1, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidPricing)
		assert.Contains(t, err.Error(), "overflows")
	})

	t.Run("should require a product", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.UUID{}, 1, 100, 0)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
