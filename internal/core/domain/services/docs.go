// Package services provides domain services that implement business
// calculations spanning several value objects of the order aggregate.
//
// The package includes:
//   - PricingEngine: turns requested products and catalog prices into priced
//     line items and order totals
//
// Services in this package are pure: they perform no I/O and return the same
// result for the same input, which keeps them safe to call repeatedly.
package services
