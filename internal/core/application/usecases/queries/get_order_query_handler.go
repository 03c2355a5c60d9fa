package queries

import (
	"context"
	"time"
)

// GetOrderQueryHandler loads a single order for display.
type GetOrderQueryHandler struct {
	reader OrderReader
	now    func() time.Time
}

// NewGetOrderQueryHandler creates the handler. A nil clock uses time.Now.
func NewGetOrderQueryHandler(reader OrderReader, clock func() time.Time) GetOrderQueryHandler {
	if clock == nil {
		clock = time.Now
	}
	return GetOrderQueryHandler{reader: reader, now: clock}
}

// Handle returns the order or *errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.reader.GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{Order: NewOrderView(o, h.now())}
	if fields := query.Fields(); fields != nil {
		resp.Projection = resp.Order.Project(fields)
	}
	return resp, nil
}
