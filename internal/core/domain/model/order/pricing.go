package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrPricingIsNotConstructed is returned when a Pricing was not created via NewPricing.
var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// Pricing holds the order level monetary fields, all in minor currency units
// except the two percentages.
type Pricing struct { //nolint:recvcheck //using for validation
	subtotal        int64
	discountPercent int64
	taxPercent      int64
	shippingCost    int64
	totalAmount     int64

	guard guard.ConstructorGuard
}

// NewPricing creates a Pricing and checks that totalAmount matches
//
//	subtotal + floor(subtotal*taxPercent/100) + shippingCost - floor(subtotal*discountPercent/100)
//
// and that no field is negative.
func NewPricing(subtotal, discountPercent, taxPercent, shippingCost, totalAmount int64) (Pricing, error) {
	p := Pricing{
		subtotal:        subtotal,
		discountPercent: discountPercent,
		taxPercent:      taxPercent,
		shippingCost:    shippingCost,
		totalAmount:     totalAmount,
		guard:           guard.NewConstructorGuard(),
	}

	for _, f := range []struct {
		name  string
		value int64
	}{
		{"subtotal", subtotal},
		{"discount percent", discountPercent},
		{"tax percent", taxPercent},
		{"shipping cost", shippingCost},
		{"total amount", totalAmount},
	} {
		if f.value < 0 {
			return Pricing{}, errs.NewInvalidPricingError(fmt.Sprintf("%s is negative (%d)", f.name, f.value))
		}
	}

	if expected := subtotal + p.TaxAmount() + shippingCost - p.DiscountAmount(); expected != totalAmount {
		return Pricing{}, errs.NewInvalidPricingError(
			fmt.Sprintf("total amount %d does not match computed total %d", totalAmount, expected))
	}

	return p, nil
}

// Validate ensures the pricing was created through NewPricing.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Subtotal is the sum of all line subtotals.
func (p Pricing) Subtotal() int64 { return p.subtotal }

// DiscountPercent is the sum of all line discount percentages.
func (p Pricing) DiscountPercent() int64 { return p.discountPercent }

// TaxPercent is the flat tax percentage applied to the subtotal.
func (p Pricing) TaxPercent() int64 { return p.taxPercent }

// ShippingCost is the flat shipping fee.
func (p Pricing) ShippingCost() int64 { return p.shippingCost }

// TotalAmount is what the buyer pays.
func (p Pricing) TotalAmount() int64 { return p.totalAmount }

// DiscountAmount is floor(subtotal*discountPercent/100).
func (p Pricing) DiscountAmount() int64 { return percentOf(p.subtotal, p.discountPercent) }

// TaxAmount is floor(subtotal*taxPercent/100).
func (p Pricing) TaxAmount() int64 { return percentOf(p.subtotal, p.taxPercent) }

// matches checks the sum invariants against the line items.
func (p Pricing) matches(items []LineItem) error {
	var subtotal, discount int64
	for _, item := range items {
		subtotal += item.Subtotal()
		discount += item.DiscountPercent()
	}

	if subtotal != p.subtotal {
		return errs.NewInvalidPricingError(fmt.Sprintf("subtotal %d does not match line items sum %d", p.subtotal, subtotal))
	}
	if discount != p.discountPercent {
		return errs.NewInvalidPricingError(
			fmt.Sprintf("discount percent %d does not match line items sum %d", p.discountPercent, discount))
	}
	return nil
}

// percentOf is floor(amount*percent/100) for non-negative operands.
func percentOf(amount, percent int64) int64 {
	return amount * percent / 100
}
