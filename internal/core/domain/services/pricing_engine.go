package services

import (
	"errors"
	"fmt"
	"math"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// RequestedItem is a buyer supplied product reference and quantity.
// Buyers never supply prices.
type RequestedItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CatalogPrice is the authoritative price of a product at pricing time.
type CatalogPrice struct {
	UnitPrice       int64
	DiscountPercent int64
}

// PricedOrder is the output of PricingEngine.Price.
type PricedOrder struct {
	Items   []order.LineItem
	Pricing order.Pricing
}

// PricingEngine computes line subtotals and order totals with integer floor
// division:
//
//	subtotal        = Σ unitPrice_i * quantity_i
//	discountPercent = Σ discountPercent_i
//	totalAmount     = subtotal + floor(subtotal*tax/100) + shipping - floor(subtotal*discountPercent/100)
//
// Discount percentages are summed, not averaged or capped.
//
// Example usage:
//
//	engine, _ := services.NewPricingEngine(5, 10)
//	priced, err := engine.Price(requested, prices)
//	if errors.Is(err, errs.ErrInvalidPricing) {
//	    // the order would have a negative total
//	}
type PricingEngine struct {
	taxPercent   int64
	shippingCost int64
}

// NewPricingEngine creates an engine with a flat tax percentage and shipping fee.
//
// Parameters:
//   - taxPercent: flat tax applied to the subtotal, must not be negative
//   - shippingCost: flat fee in minor units, must not be negative
func NewPricingEngine(taxPercent, shippingCost int64) (PricingEngine, error) {
	if taxPercent < 0 {
		return PricingEngine{}, errs.NewInvalidPricingError(fmt.Sprintf("tax percent is negative (%d)", taxPercent))
	}
	if shippingCost < 0 {
		return PricingEngine{}, errs.NewInvalidPricingError(fmt.Sprintf("shipping cost is negative (%d)", shippingCost))
	}
	return PricingEngine{taxPercent: taxPercent, shippingCost: shippingCost}, nil
}

// TaxPercent returns the configured tax percentage.
func (e PricingEngine) TaxPercent() int64 { return e.taxPercent }

// ShippingCost returns the configured shipping fee.
func (e PricingEngine) ShippingCost() int64 { return e.shippingCost }

// ValidateRequest checks buyer supplied items before any catalog lookup.
//
// Returns:
//   - *errs.ValueIsRequiredError when no items are requested
//   - *errs.InvalidQuantityError for the first non-positive quantity
func ValidateRequest(requested []RequestedItem) error {
	if len(requested) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range requested {
		if err := item.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("product", err)
		}
		if item.Quantity <= 0 {
			return errs.NewInvalidQuantityError(item.ProductID.String(), item.Quantity)
		}
	}
	return nil
}

// Price builds line items in request order from the given catalog prices and
// computes the order totals.
//
// Parameters:
//   - requested: buyer items, checked with ValidateRequest
//   - prices: catalog prices keyed by product, one entry per distinct product
//
// Returns:
//   - PricedOrder on success
//   - *errs.ObjectNotFoundError when a product has no price
//   - *errs.InvalidQuantityError or *errs.InvalidPricingError on rule violations
func (e PricingEngine) Price(requested []RequestedItem, prices map[kernel.UUID]CatalogPrice) (PricedOrder, error) {
	if err := ValidateRequest(requested); err != nil {
		return PricedOrder{}, err
	}

	items := make([]order.LineItem, 0, len(requested))
	var subtotal, discountPercent int64

	for _, r := range requested {
		price, ok := prices[r.ProductID]
		if !ok {
			return PricedOrder{}, errs.NewObjectNotFoundError("product", r.ProductID)
		}

		item, err := order.NewLineItem(r.ProductID, r.Quantity, price.UnitPrice, price.DiscountPercent)
		if err != nil {
			return PricedOrder{}, err
		}

		if subtotal, err = addChecked(subtotal, item.Subtotal(), "subtotal"); err != nil {
			return PricedOrder{}, err
		}
		if discountPercent, err = addChecked(discountPercent, item.DiscountPercent(), "discount percent"); err != nil {
			return PricedOrder{}, err
		}
		items = append(items, item)
	}

	pricing, err := e.total(subtotal, discountPercent)
	if err != nil {
		return PricedOrder{}, err
	}

	return PricedOrder{Items: items, Pricing: pricing}, nil
}

// Reprice recomputes the totals of already priced line items, used when the
// item set of an existing order is replaced.
func (e PricingEngine) Reprice(items []order.LineItem) (order.Pricing, error) {
	if len(items) == 0 {
		return order.Pricing{}, errs.NewValueIsRequiredError("items")
	}

	var subtotal, discountPercent int64
	for _, item := range items {
		var err error
		if subtotal, err = addChecked(subtotal, item.Subtotal(), "subtotal"); err != nil {
			return order.Pricing{}, err
		}
		if discountPercent, err = addChecked(discountPercent, item.DiscountPercent(), "discount percent"); err != nil {
			return order.Pricing{}, err
		}
	}
	return e.total(subtotal, discountPercent)
}

func (e PricingEngine) total(subtotal, discountPercent int64) (order.Pricing, error) {
	taxAmount, err := percentOf(subtotal, e.taxPercent)
	if err != nil {
		return order.Pricing{}, err
	}
	discountAmount, err := percentOf(subtotal, discountPercent)
	if err != nil {
		return order.Pricing{}, err
	}

	gross, err := addChecked(subtotal, taxAmount, "total amount")
	if err != nil {
		return order.Pricing{}, err
	}
	if gross, err = addChecked(gross, e.shippingCost, "total amount"); err != nil {
		return order.Pricing{}, err
	}

	total := gross - discountAmount
	if total < 0 {
		return order.Pricing{}, errs.NewInvalidPricingError(
			fmt.Sprintf("total amount is negative (%d): discount %d%% exceeds subtotal, tax and shipping", total, discountPercent))
	}

	return order.NewPricing(subtotal, discountPercent, e.taxPercent, e.shippingCost, total)
}

var errOverflow = errors.New("amount overflows int64")

func addChecked(a, b int64, name string) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, errs.NewInvalidPricingError(fmt.Sprintf("%s: %v", name, errOverflow))
	}
	return a + b, nil
}

// percentOf is floor(amount*percent/100) for non-negative operands.
func percentOf(amount, percent int64) (int64, error) {
	if percent > 0 && amount > math.MaxInt64/percent {
		return 0, errs.NewInvalidPricingError(fmt.Sprintf("%d%% of %d: %v", percent, amount, errOverflow))
	}
	return amount * percent / 100, nil
}
