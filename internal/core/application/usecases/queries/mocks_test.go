package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetByNumber(ctx context.Context, number order.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, limit, offset)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

var createdAt = time.Date(2024, time.October, 1, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func restoreOrder(t *testing.T, number order.OrderNumber, status order.Status) *order.Order {
	t.Helper()

	address, err := order.NewAddress("12 Main Street", "Springfield", "IL", "US", "62704")
	require.NoError(t, err)
	payment, err := order.NewPendingPayment(order.UPI)
	require.NoError(t, err)
	first, err := order.NewLineItem(kernel.NewUUID(), 2, 1000, 10)
	require.NoError(t, err)
	second, err := order.NewLineItem(kernel.NewUUID(), 1, 500, 0)
	require.NoError(t, err)
	// subtotal 2500, tax 5% = 125, shipping 100, discount 10% = 250
	pricing, err := order.NewPricing(2500, 10, 5, 100, 2475)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.State{
		ID:              kernel.NewUUID(),
		Number:          number,
		BuyerID:         kernel.NewUUID(),
		ShippingAddress: address,
		BillingAddress:  address,
		Items:           []order.LineItem{first, second},
		Pricing:         pricing,
		Payment:         payment,
		Status:          status,
		Notes:           "leave at the door",
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
		Version:         3,
	})
	require.NoError(t, err)
	return o
}
