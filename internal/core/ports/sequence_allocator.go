package ports

import "context"

// SequenceAllocator hands out values of the store-wide order number counter.
//
// Implementations must be atomic across processes: two calls never return
// the same value, values grow monotonically and gaps are allowed.
type SequenceAllocator interface {
	Next(ctx context.Context) (int64, error)
}
