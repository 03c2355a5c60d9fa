package queries

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrListOrdersByStatusQueryIsNotConstructed = errors.New(
	"ListOrdersByStatusQuery must be created via NewListOrdersByStatusQuery constructor",
)

// ListOrdersByStatusQuery retrieves every order currently in one status,
// newest first. Operators use it to find work, e.g. all CONFIRMED orders
// waiting to be picked.
type ListOrdersByStatusQuery struct { //nolint:recvcheck //using for validation
	status order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersByStatusQuery parses status case-insensitively.
func NewListOrdersByStatusQuery(status string) (ListOrdersByStatusQuery, error) {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return ListOrdersByStatusQuery{}, err
	}
	return ListOrdersByStatusQuery{status: parsed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByStatusQueryIsNotConstructed)
}

func (q ListOrdersByStatusQuery) Status() order.Status { return q.status }
