package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create address and trim fields", func(t *testing.T) {
		a, err := order.NewAddress("  12 Main Street ", "Springfield", "IL", "US", " 62704 ")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "12 Main Street", a.Street())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "IL", a.State())
		assert.Equal(t, "US", a.Country())
		assert.Equal(t, "62704", a.Zip())
	})

	t.Run("should accept zip plus four", func(t *testing.T) {
		a, err := order.NewAddress("12 Main Street", "Springfield", "IL", "US", "62704-1234")

		require.NoError(t, err)
		assert.Equal(t, "62704-1234", a.Zip())
	})

	t.Run("should reject a short street", func(t *testing.T) {
		_, err := order.NewAddress("Main", "Springfield", "IL", "US", "62704")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "4 characters is shorter than 5")
	})

	t.Run("should reject malformed zip codes", func(t *testing.T) {
		for _, zip := range []string{"1234", "123456", "12345-12", "ABCDE"} {
			_, err := order.NewAddress("12 Main Street", "Springfield", "IL", "US", zip)

			require.Error(t, err, zip)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "zip")
		}
	})

	t.Run("should report every missing field at once", func(t *testing.T) {
		a, err := order.NewAddress("", " ", "", "", "")

		require.Error(t, err)
		assert.Equal(t, order.Address{}, a)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"street", "city", "state", "country", "zip"} {
			assert.Contains(t, err.Error(), "value is required: "+field)
		}
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		var a order.Address

		assert.ErrorIs(t, a.Validate(), order.ErrAddressIsNotConstructed)
	})
}
