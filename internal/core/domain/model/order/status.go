package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──> Cancelled
//
//	any status except Refunded ──> Refunded
//
// Delivered, Cancelled and Refunded are terminal for the forward flow;
// Refunded is reachable from every other status, including Pending, because
// the observed refund policy imposes no restriction.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// Confirmed orders were accepted by the shop.
	Confirmed

	// Processing orders are being picked and packed.
	Processing

	// Shipped orders were handed to a carrier.
	Shipped

	// Delivered orders reached the buyer.
	Delivered

	// Cancelled orders were withdrawn before shipping.
	Cancelled

	// Refunded orders had their payment returned.
	Refunded
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Processing: "PROCESSING",
	Shipped:    "SHIPPED",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
	Refunded:   "REFUNDED",
}

// transitions lists the forward moves allowed from each status.
// Refunded is handled separately in CanTransitionTo.
var transitions = map[Status][]Status{
	Pending:    {Confirmed, Cancelled},
	Confirmed:  {Processing, Cancelled},
	Processing: {Shipped, Cancelled},
	Shipped:    {Delivered},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Processing, Shipped, Delivered, Cancelled, Refunded}
}

// ParseStatus converts a status name (case-insensitive) into a Status.
//
// Example:
//
//	status, err := order.ParseStatus("shipped")
//	// status == order.Shipped
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the seven lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case status name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the forward flow has ended.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// CanCancel reports whether an order in this status may still be cancelled.
// True exactly for Pending, Confirmed and Processing.
func (s Status) CanCancel() bool {
	return s == Pending || s == Confirmed || s == Processing
}

// CanTransitionTo reports whether target is reachable in one step.
// Staying in the same status is never a transition.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	if target == Refunded {
		return s != Refunded
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the move to target and returns the new status.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (s, *errs.IllegalStatusTransitionError) otherwise, carrying both the
//     current and the requested status
//   - (s, *errs.ValueIsInvalidError) when target is not a valid status
//
// Example:
//
//	next, err := order.Cancelled.TransitionTo(order.Shipped)
//	// errors.Is(err, errs.ErrIllegalStatusTransition) == true
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}

	if !s.CanTransitionTo(target) {
		return s, errs.NewIllegalStatusTransitionError(s, target)
	}

	return target, nil
}
