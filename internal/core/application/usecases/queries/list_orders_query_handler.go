package queries

import (
	"context"
	"time"
)

// ListOrdersQueryHandler pages through all orders.
type ListOrdersQueryHandler struct {
	reader OrderReader
	now    func() time.Time
}

// NewListOrdersQueryHandler creates the handler. A nil clock uses time.Now.
func NewListOrdersQueryHandler(reader OrderReader, clock func() time.Time) ListOrdersQueryHandler {
	if clock == nil {
		clock = time.Now
	}
	return ListOrdersQueryHandler{reader: reader, now: clock}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders, err := h.reader.List(ctx, query.Limit(), query.Offset())
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	now := h.now()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o, now))
	}
	return ListOrdersQueryResponse{Orders: views, Limit: query.Limit(), Offset: query.Offset()}, nil
}
