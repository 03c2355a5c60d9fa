package errs

import "errors"

// Kind is the caller-facing classification of an error.
type Kind string

const (
	KindValidation              Kind = "validation_error"
	KindInvalidQuantity         Kind = "invalid_quantity"
	KindInvalidPricing          Kind = "invalid_pricing"
	KindNotFound                Kind = "not_found"
	KindIllegalStatusTransition Kind = "illegal_status_transition"
	KindConcurrentModification  Kind = "concurrent_modification"
	KindGenerationExhausted     Kind = "generation_exhausted"
	KindOrderCreationTimeout    Kind = "order_creation_timeout"
	KindUpstreamUnavailable     Kind = "upstream_unavailable"
	KindInternal                Kind = "internal"
)

// kindMatchers is checked in order; the first match wins. Business rule
// failures come before the generic validation errors so that a joined error
// containing both is reported by its most specific kind.
var kindMatchers = []struct {
	kind    Kind
	targets []error
}{
	{KindInvalidQuantity, []error{ErrInvalidQuantity}},
	{KindInvalidPricing, []error{ErrInvalidPricing}},
	{KindIllegalStatusTransition, []error{ErrIllegalStatusTransition}},
	{KindConcurrentModification, []error{ErrConcurrentModification}},
	{KindGenerationExhausted, []error{ErrGenerationExhausted}},
	{KindOrderCreationTimeout, []error{ErrOrderCreationTimeout}},
	{KindUpstreamUnavailable, []error{ErrUpstreamUnavailable}},
	{KindNotFound, []error{ErrObjectNotFound}},
	{KindValidation, []error{
		ErrValueIsInvalid,
		ErrValueIsRequired,
		ErrValueIsOutOfRange,
		ErrFieldProjectionIsInvalid,
	}},
}

// KindOf classifies err. A nil error has no kind and returns "".
// Errors outside of the taxonomy are KindInternal.
//
// Example:
//
//	switch errs.KindOf(err) {
//	case errs.KindConcurrentModification:
//	    // reload and retry
//	case errs.KindValidation, errs.KindInvalidQuantity:
//	    // ask the buyer to fix the request
//	}
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	for _, m := range kindMatchers {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.kind
			}
		}
	}

	return KindInternal
}
