package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderReader is the read side of the order store. The Postgres order
// repository satisfies it outside of any transaction.
type OrderReader interface {
	GetByNumber(ctx context.Context, number order.OrderNumber) (*order.Order, error)
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
	List(ctx context.Context, limit, offset int) ([]*order.Order, error)
}
