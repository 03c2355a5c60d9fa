package kernel

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

const (
	// minEpochMillis and maxEpochMillis bound the 13-digit range,
	// 2001-09-09T01:46:40Z to 2286-11-20T17:46:39.999Z.
	minEpochMillis int64 = 1_000_000_000_000
	maxEpochMillis int64 = 9_999_999_999_999
)

// EpochMillis is a point in time persisted as a 13-digit count of
// milliseconds since the Unix epoch. Payment paidAt and the estimated
// delivery date are stored in this form.
//
// The zero value means "not set".
type EpochMillis int64

// NewEpochMillis validates that ms has exactly 13 digits.
//
// Example:
//
//	paidAt, err := kernel.NewEpochMillis(1718000000000)
func NewEpochMillis(ms int64) (EpochMillis, error) {
	if ms < minEpochMillis || ms > maxEpochMillis {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(
			"epoch millis", ms, minEpochMillis, maxEpochMillis,
			fmt.Errorf("%d is not a 13-digit epoch-millisecond timestamp", ms),
		)
	}
	return EpochMillis(ms), nil
}

// EpochMillisFromTime converts t, truncating to millisecond precision.
func EpochMillisFromTime(t time.Time) (EpochMillis, error) {
	return NewEpochMillis(t.UnixMilli())
}

// IsZero reports whether the timestamp is unset.
func (e EpochMillis) IsZero() bool {
	return e == 0
}

// Int64 returns the raw millisecond count.
func (e EpochMillis) Int64() int64 {
	return int64(e)
}

// Time returns the UTC time, or the zero time when unset.
func (e EpochMillis) Time() time.Time {
	if e.IsZero() {
		return time.Time{}
	}
	return time.UnixMilli(int64(e)).UTC()
}
