package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderReference is what the buyer directory records about an order.
type OrderReference struct {
	OrderID     kernel.UUID
	OrderNumber order.OrderNumber
}

// BuyerDirectory keeps the order history of buyers.
type BuyerDirectory interface {
	AppendOrderReference(ctx context.Context, buyerID kernel.UUID, ref OrderReference) error
}

// PendingBuyerReference is an outbox entry waiting for delivery.
type PendingBuyerReference struct {
	ID        int64
	BuyerID   kernel.UUID
	Reference OrderReference
	Attempts  int
	CreatedAt time.Time
}

// BuyerReferenceOutbox stores buyer order references until they reach the
// BuyerDirectory.
type BuyerReferenceOutbox interface {
	// Enqueue records a reference; it is written in the order creation transaction.
	Enqueue(ctx context.Context, buyerID kernel.UUID, ref OrderReference) error

	// Pending returns up to limit undelivered entries that were attempted fewer
	// than maxAttempts times, oldest first.
	Pending(ctx context.Context, limit, maxAttempts int) ([]PendingBuyerReference, error)

	// MarkDelivered flags an entry as delivered.
	MarkDelivered(ctx context.Context, id int64) error

	// MarkFailed counts a failed delivery attempt and records its cause.
	MarkFailed(ctx context.Context, id int64, cause string) error
}
