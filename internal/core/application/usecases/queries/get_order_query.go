package queries

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by its number, optionally projected to
// a subset of fields.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-2410-000042", []string{"status", "totalAmount"})
//	if err != nil {
//	    return err // malformed number or unknown field
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	fmt.Println(resp.Projection["status"])
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderNumber order.OrderNumber
	fields      []string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the order number and the requested fields.
// An empty fields slice selects the full view.
func NewGetOrderQuery(orderNumber string, fields []string) (GetOrderQuery, error) {
	number, err := order.ParseOrderNumber(orderNumber)
	if err != nil {
		return GetOrderQuery{}, err
	}

	selected, err := validateFields(fields)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderNumber: number,
		fields:      selected,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderNumber() order.OrderNumber { return q.orderNumber }

// Fields returns the requested projection, nil for the full view.
func (q GetOrderQuery) Fields() []string {
	if len(q.fields) == 0 {
		return nil
	}
	return append([]string(nil), q.fields...)
}

// GetOrderQueryResponse carries the full view and, when fields were
// requested, the projection built from it.
type GetOrderQueryResponse struct {
	Order      OrderView
	Projection map[string]any
}
