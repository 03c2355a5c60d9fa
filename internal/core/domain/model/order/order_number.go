package order

import (
	"fmt"
	"regexp"
	"time"

	"orders/internal/pkg/errs"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{4}-\d{6,}$`)

// OrderNumber is the immutable, human-readable order identifier
// ORD-{YY}{MM}-{seq:06d}. YY and MM come from the allocation month in UTC;
// seq is the store-wide counter and is never reset.
type OrderNumber string

// NewOrderNumber formats the number for sequence value seq allocated at at.
//
// Example:
//
//	n, _ := order.NewOrderNumber(time.Date(2024, 10, 3, 0, 0, 0, 0, time.UTC), 42)
//	// n == "ORD-2410-000042"
func NewOrderNumber(at time.Time, seq int64) (OrderNumber, error) {
	if seq <= 0 {
		return "", errs.NewValueIsOutOfRangeError("order number sequence", seq, 1, "unbounded")
	}
	at = at.UTC()
	return OrderNumber(fmt.Sprintf("ORD-%02d%02d-%06d", at.Year()%100, int(at.Month()), seq)), nil
}

// ParseOrderNumber validates the textual form of an order number.
func ParseOrderNumber(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is not of form ORD-YYMM-NNNNNN", s))
	}
	return OrderNumber(s), nil
}

// Validate checks the format.
func (n OrderNumber) Validate() error {
	_, err := ParseOrderNumber(string(n))
	return err
}

func (n OrderNumber) String() string {
	return string(n)
}
