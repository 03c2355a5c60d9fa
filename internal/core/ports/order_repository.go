// Package ports defines the contracts between the order core and its
// infrastructure: persistence, the order number sequence and the external
// catalog and buyer services.
package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are addressed by their immutable order number.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	// Returns errs.ErrDuplicateOrderNumber when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate if its stored
	// version still equals aggregate.Version(), then advances the version.
	// Returns *errs.ConcurrentModificationError when another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber retrieves an order with all its line items.
	// Returns *errs.ObjectNotFoundError for unknown numbers.
	GetByNumber(ctx context.Context, number order.OrderNumber) (*order.Order, error)

	// ListByStatus returns all orders in status, newest created first.
	// An empty slice is a valid result.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// List returns a page of orders, newest created first.
	List(ctx context.Context, limit, offset int) ([]*order.Order, error)
}
