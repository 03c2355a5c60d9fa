package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	testCases := []struct {
		name           string
		limit, offset  int
		expectedLimit  int
		expectedOffset int
		wantErr        bool
	}{
		{"default limit", 0, 0, queries.DefaultListLimit, 0, false},
		{"explicit page", 20, 40, 20, 40, false},
		{"max limit", queries.MaxListLimit, 0, queries.MaxListLimit, 0, false},
		{"limit above max", queries.MaxListLimit + 1, 0, 0, 0, true},
		{"negative limit", -1, 0, 0, 0, true},
		{"negative offset", 10, -5, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := queries.NewListOrdersQuery(tc.limit, tc.offset)

			if tc.wantErr {
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLimit, query.Limit())
			assert.Equal(t, tc.expectedOffset, query.Offset())
		})
	}
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	t.Run("should return one page", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("List", ctx, 2, 4).Return([]*order.Order{
			restoreOrder(t, "ORD-2410-000006", order.Pending),
			restoreOrder(t, "ORD-2410-000005", order.Cancelled),
		}, nil).Once()

		query, err := queries.NewListOrdersQuery(2, 4)
		require.NoError(t, err)

		resp, err := queries.NewListOrdersQueryHandler(reader, fixedClock(createdAt)).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Limit)
		assert.Equal(t, 4, resp.Offset)
		require.Len(t, resp.Orders, 2)
		assert.False(t, resp.Orders[1].CanCancel)
		reader.AssertExpectations(t)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := queries.NewListOrdersQueryHandler(new(MockOrderReader), nil).Handle(t.Context(), queries.ListOrdersQuery{})

		assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
	})
}
