package order

import (
	"errors"
	"fmt"
	"math"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one priced product-quantity entry of an order.
// unitPrice and discountPercent are the catalog values at pricing time;
// subtotal is always unitPrice * quantity in minor currency units.
type LineItem struct { //nolint:recvcheck //using for validation
	productID       kernel.UUID
	quantity        int
	unitPrice       int64
	discountPercent int64
	subtotal        int64

	guard guard.ConstructorGuard
}

// NewLineItem validates the inputs and computes the line subtotal.
//
// Returns:
//   - *errs.InvalidQuantityError when quantity is not positive
//   - *errs.InvalidPricingError for a negative price or discount, or when the
//     subtotal does not fit into int64
func NewLineItem(productID kernel.UUID, quantity int, unitPrice int64, discountPercent int64) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewInvalidQuantityError(productID.String(), quantity)
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewInvalidPricingError(fmt.Sprintf("product %s has negative unit price %d", productID, unitPrice))
	}
	if discountPercent < 0 {
		return LineItem{}, errs.NewInvalidPricingError(
			fmt.Sprintf("product %s has negative discount %d%%", productID, discountPercent))
	}
	if unitPrice > 0 && int64(quantity) > math.MaxInt64/unitPrice {
		return LineItem{}, errs.NewInvalidPricingError(fmt.Sprintf("product %s subtotal overflows", productID))
	}

	return LineItem{
		productID:       productID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		discountPercent: discountPercent,
		subtotal:        unitPrice * int64(quantity),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line item was created through NewLineItem.
func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the catalog product reference.
func (l LineItem) ProductID() kernel.UUID { return l.productID }

// Quantity returns the ordered quantity.
func (l LineItem) Quantity() int { return l.quantity }

// UnitPrice returns the catalog unit price in minor units.
func (l LineItem) UnitPrice() int64 { return l.unitPrice }

// DiscountPercent returns the catalog discount percentage of the product.
func (l LineItem) DiscountPercent() int64 { return l.discountPercent }

// Subtotal returns unitPrice * quantity.
func (l LineItem) Subtotal() int64 { return l.subtotal }
