// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes validation errors shared by all value objects:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an order, product or buyer cannot be found
//
// and the order lifecycle taxonomy:
//   - InvalidQuantityError, InvalidPricingError
//   - IllegalStatusTransitionError, ConcurrentModificationError
//   - UpstreamError (timeout or unavailable collaborator)
//   - ErrGenerationExhausted for order number allocation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf maps any error onto exactly one Kind so that transports can report
// a distinct, actionable category to callers.
package errs
