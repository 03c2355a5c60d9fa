package commands_test

import (
	"context"
	"sync"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Enqueue(ctx context.Context, buyerID kernel.UUID, ref ports.OrderReference) error {
	args := m.Called(ctx, buyerID, ref)
	return args.Error(0)
}

func (m *MockOutbox) Pending(ctx context.Context, limit, maxAttempts int) ([]ports.PendingBuyerReference, error) {
	args := m.Called(ctx, limit, maxAttempts)
	return args.Get(0).([]ports.PendingBuyerReference), args.Error(1)
}

func (m *MockOutbox) MarkDelivered(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutbox) MarkFailed(ctx context.Context, id int64, cause string) error {
	args := m.Called(ctx, id, cause)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) BuyerReferenceOutbox() ports.BuyerReferenceOutbox {
	args := m.Called()
	return args.Get(0).(ports.BuyerReferenceOutbox)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPriceResolver struct{ mock.Mock }

func (m *MockPriceResolver) Resolve(
	ctx context.Context,
	items []services.RequestedItem,
) (map[kernel.UUID]services.CatalogPrice, error) {
	args := m.Called(ctx, items)
	prices, _ := args.Get(0).(map[kernel.UUID]services.CatalogPrice)
	return prices, args.Error(1)
}

type MockNumberAllocator struct{ mock.Mock }

func (m *MockNumberAllocator) Allocate(ctx context.Context) (order.OrderNumber, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.OrderNumber), args.Error(1)
}

// memoryOrderStore is a concurrency-safe order store that enforces unique
// order numbers the way the database index does.
type memoryOrderStore struct {
	mu       sync.Mutex
	byNumber map[order.OrderNumber]*order.Order
	outbox   []ports.OrderReference
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{byNumber: make(map[order.OrderNumber]*order.Order)}
}

func (s *memoryOrderStore) Create() commands.OrderUoW { return &memoryUoW{store: s} }

type memoryUoW struct {
	store   *memoryOrderStore
	pending []*order.Order
	refs    []ports.OrderReference
}

func (u *memoryUoW) Begin(_ context.Context) error {
	return nil
}

func (u *memoryUoW) Rollback(_ context.Context) error {
	u.pending, u.refs = nil, nil
	return nil
}

func (u *memoryUoW) Commit(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, o := range u.pending {
		u.store.byNumber[o.Number()] = o
	}
	u.store.outbox = append(u.store.outbox, u.refs...)
	u.pending, u.refs = nil, nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryRepo{u}
}

func (u *memoryUoW) BuyerReferenceOutbox() ports.BuyerReferenceOutbox {
	return memoryOutbox{u}
}

type memoryRepo struct{ uow *memoryUoW }

func (r memoryRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if _, ok := r.uow.store.byNumber[o.Number()]; ok {
		return errs.ErrDuplicateOrderNumber
	}
	r.uow.pending = append(r.uow.pending, o)
	return nil
}

func (r memoryRepo) Update(_ context.Context, _ *order.Order) error { return nil }

func (r memoryRepo) GetByNumber(_ context.Context, n order.OrderNumber) (*order.Order, error) {
	return nil, errs.NewObjectNotFoundError("order", n)
}

func (r memoryRepo) ListByStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, nil
}

func (r memoryRepo) List(_ context.Context, _, _ int) ([]*order.Order, error) { return nil, nil }

type memoryOutbox struct{ uow *memoryUoW }

func (o memoryOutbox) Enqueue(_ context.Context, _ kernel.UUID, ref ports.OrderReference) error {
	o.uow.refs = append(o.uow.refs, ref)
	return nil
}

func (o memoryOutbox) Pending(_ context.Context, _, _ int) ([]ports.PendingBuyerReference, error) {
	return nil, nil
}

func (o memoryOutbox) MarkDelivered(_ context.Context, _ int64) error { return nil }

func (o memoryOutbox) MarkFailed(_ context.Context, _ int64, _ string) error { return nil }
