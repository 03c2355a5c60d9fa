package commands

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// OrderNumberAllocator allocates unique order numbers.
type OrderNumberAllocator interface {
	Allocate(ctx context.Context) (order.OrderNumber, error)
}

// OrderNumberGenerator formats order numbers from an atomic store-wide
// sequence. The month part comes from the allocation time; the counter is
// never reset.
//
// Example:
//
//	generator := NewOrderNumberGenerator(allocator, time.Now)
//	number, err := generator.Allocate(ctx)
//	// number == "ORD-2410-000042"
type OrderNumberGenerator struct {
	sequence ports.SequenceAllocator
	now      func() time.Time
}

// NewOrderNumberGenerator creates a generator. A nil clock defaults to time.Now.
func NewOrderNumberGenerator(sequence ports.SequenceAllocator, now func() time.Time) *OrderNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &OrderNumberGenerator{sequence: sequence, now: now}
}

// Allocate takes the next sequence value and formats it. Every successful
// call returns a number no other call ever returns.
func (g *OrderNumberGenerator) Allocate(ctx context.Context) (order.OrderNumber, error) {
	seq, err := g.sequence.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}
	return order.NewOrderNumber(g.now(), seq)
}
