// Package kernel provides the domain primitives shared by the order model:
//   - UUID: identifier for orders, buyers and catalog products
//   - EpochMillis: 13-digit epoch-millisecond timestamps used by payments
//     and delivery estimates
//
// Both are immutable value types whose zero value is either invalid (UUID)
// or explicitly "unset" (EpochMillis).
package kernel
