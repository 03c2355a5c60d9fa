package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrInvalidPricing           = errors.New("invalid pricing")
	ErrGenerationExhausted      = errors.New("order number generation exhausted")
	ErrIllegalStatusTransition  = errors.New("illegal status transition")
	ErrConcurrentModification   = errors.New("concurrent modification")
	ErrOrderCreationTimeout     = errors.New("order creation timed out")
	ErrUpstreamUnavailable      = errors.New("upstream unavailable")
	ErrDuplicateOrderNumber     = errors.New("order number already taken")
	ErrFieldProjectionIsInvalid = errors.New("field projection is invalid")
)

// InvalidQuantityError reports a line item whose quantity is not a positive integer.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func NewInvalidQuantityError(productID string, quantity int) *InvalidQuantityError {
	return &InvalidQuantityError{ProductID: productID, Quantity: quantity}
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: product %s has quantity %d, must be greater than 0", ErrInvalidQuantity, e.ProductID, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// InvalidPricingError reports a priced order that can not be persisted.
type InvalidPricingError struct {
	Reason string
}

func NewInvalidPricingError(reason string) *InvalidPricingError {
	return &InvalidPricingError{Reason: reason}
}

func (e *InvalidPricingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPricing, e.Reason)
}

func (e *InvalidPricingError) Unwrap() error {
	return ErrInvalidPricing
}

// IllegalStatusTransitionError carries both sides of a rejected transition.
type IllegalStatusTransitionError struct {
	Current   string
	Requested string
}

func NewIllegalStatusTransitionError(current fmt.Stringer, requested fmt.Stringer) *IllegalStatusTransitionError {
	return &IllegalStatusTransitionError{
		Current:   current.String(),
		Requested: requested.String(),
	}
}

func (e *IllegalStatusTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalStatusTransition, e.Current, e.Requested)
}

func (e *IllegalStatusTransitionError) Unwrap() error {
	return ErrIllegalStatusTransition
}

// ConcurrentModificationError is returned when an optimistic version check fails.
type ConcurrentModificationError struct {
	Entity          string
	ID              string
	ExpectedVersion int64
}

func NewConcurrentModificationError(entity string, id string, expectedVersion int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		Entity:          entity,
		ID:              id,
		ExpectedVersion: expectedVersion,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s is no longer at version %d", ErrConcurrentModification, e.Entity, e.ID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// UpstreamError describes a failed call to an external collaborator.
// Kind is one of ErrUpstreamUnavailable or ErrOrderCreationTimeout.
type UpstreamError struct {
	Service string
	Kind    error
	Cause   error
}

func NewUpstreamUnavailableError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Kind: ErrUpstreamUnavailable, Cause: cause}
}

func NewOrderCreationTimeoutError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Kind: ErrOrderCreationTimeout, Cause: cause}
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Service)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}
