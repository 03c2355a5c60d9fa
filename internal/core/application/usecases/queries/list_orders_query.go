package queries

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	// DefaultListLimit applies when no limit is given.
	DefaultListLimit = 50
	// MaxListLimit caps a single page.
	MaxListLimit = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through all orders, newest first.
//
// Example:
//
//	query, _ := NewListOrdersQuery(0, 0) // first page of DefaultListLimit orders
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a page query. A zero limit means DefaultListLimit.
func NewListOrdersQuery(limit, offset int) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var err error
	if limit < 1 || limit > MaxListLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Limit() int  { return q.limit }
func (q ListOrdersQuery) Offset() int { return q.offset }

// ListOrdersQueryResponse is one page of orders.
type ListOrdersQueryResponse struct {
	Orders []OrderView `json:"orders"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
