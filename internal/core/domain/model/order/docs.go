// Package order provides the Order aggregate and the value objects it is
// built from.
//
// The package includes:
//   - Order: the aggregate root holding identity, priced line items, payment and lifecycle
//   - Status: the state machine enforcing legal status transitions
//   - OrderNumber: the human-readable identifier ORD-YYMM-NNNNNN
//   - LineItem, Pricing: priced product entries and order level totals
//   - Address, Payment: independently validated nested value objects
//
// Key business rules:
//   - order numbers are assigned once, at creation, and never change
//   - subtotal and discount percent are sums over the line items
//   - totalAmount = subtotal + tax + shipping - discount, with floor division, never negative
//   - status flow: Pending -> Confirmed -> Processing -> Shipped -> Delivered
//   - Pending, Confirmed and Processing orders can be cancelled
//   - every status except Refunded can move to Refunded
//   - line items can only be replaced while the order is Pending or Confirmed
//
// Pricing values are computed by services.PricingEngine; this package only
// verifies that they are consistent with the line items.
package order
