package queries

import (
	"context"
	"time"
)

// ListOrdersByStatusQueryHandler lists orders in one status.
type ListOrdersByStatusQueryHandler struct {
	reader OrderReader
	now    func() time.Time
}

// NewListOrdersByStatusQueryHandler creates the handler. A nil clock uses time.Now.
func NewListOrdersByStatusQueryHandler(reader OrderReader, clock func() time.Time) ListOrdersByStatusQueryHandler {
	if clock == nil {
		clock = time.Now
	}
	return ListOrdersByStatusQueryHandler{reader: reader, now: clock}
}

// Handle returns the orders newest first. No matches is an empty, non-nil slice.
func (h ListOrdersByStatusQueryHandler) Handle(ctx context.Context, query ListOrdersByStatusQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListByStatus(ctx, query.Status())
	if err != nil {
		return nil, err
	}

	now := h.now()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o, now))
	}
	return views, nil
}
