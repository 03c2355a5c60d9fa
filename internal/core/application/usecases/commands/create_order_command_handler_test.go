package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type createOrderFixture struct {
	cmd      commands.CreateOrderCommand
	items    []services.RequestedItem
	prices   map[kernel.UUID]services.CatalogPrice
	engine   services.PricingEngine
	resolver *MockPriceResolver
}

func newCreateOrderFixture(t *testing.T) createOrderFixture {
	t.Helper()

	first, second := kernel.NewUUID(), kernel.NewUUID()
	items := []services.RequestedItem{
		{ProductID: first, Quantity: 2},
		{ProductID: second, Quantity: 1},
	}
	address := testAddress(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), address, address, order.CreditCard, items, "")
	require.NoError(t, err)
	engine, err := services.NewPricingEngine(5, 10)
	require.NoError(t, err)

	prices := map[kernel.UUID]services.CatalogPrice{
		first:  {UnitPrice: 100},
		second: {UnitPrice: 50, DiscountPercent: 10},
	}
	resolver := new(MockPriceResolver)
	resolver.On("Resolve", mock.Anything, items).Return(prices, nil)

	return createOrderFixture{cmd: cmd, items: items, prices: prices, engine: engine, resolver: resolver}
}

func (f createOrderFixture) handler(
	t *testing.T,
	factory commands.OrderUoWFactory,
	numbers commands.OrderNumberAllocator,
) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(factory, numbers, f.resolver, f.engine, 3, 0, zaptest.NewLogger(t))
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000042"), nil).Once()

	repo := new(MockOrderRepository)
	outbox := new(MockOutbox)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("BuyerReferenceOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, f.cmd.BuyerID(), mock.MatchedBy(func(ref ports.OrderReference) bool {
			return ref.OrderNumber == "ORD-2410-000042"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(t, factory, numbers)
	created, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber("ORD-2410-000042"), created.Number())
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, int64(250), created.Pricing().Subtotal())
	assert.Equal(t, int64(247), created.Pricing().TotalAmount())
	assert.Equal(t, order.PaymentPending, created.Payment().Status())
	repo.AssertExpectations(t)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newCreateOrderFixture(t)
	factory := new(MockOrderUoWFactory)
	numbers := new(MockNumberAllocator)

	h := f.handler(t, factory, numbers)
	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	numbers.AssertNotCalled(t, "Allocate", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_QuantityZeroPersistsNothing(t *testing.T) {
	address := testAddress(t)
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), address, address, order.COD,
		[]services.RequestedItem{{ProductID: kernel.NewUUID(), Quantity: 0}}, "")
	require.ErrorIs(t, err, errs.ErrInvalidQuantity)

	store := newMemoryOrderStore()
	f := newCreateOrderFixture(t)
	h := f.handler(t, store, commands.NewOrderNumberGenerator(&atomicSequence{}, fixedClock))

	_, err = h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.Error(t, err)
	assert.Empty(t, store.byNumber)
	assert.Empty(t, store.outbox)
}

func TestCreateOrderCommandHandler_Handle_ResolverError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	resolver := new(MockPriceResolver)
	resolver.On("Resolve", ctx, f.items).
		Return(nil, errs.NewOrderCreationTimeoutError("product catalog", context.DeadlineExceeded)).Once()
	factory := new(MockOrderUoWFactory)
	numbers := new(MockNumberAllocator)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, resolver, f.engine, 3, 0, zaptest.NewLogger(t))
	_, err := h.Handle(ctx, f.cmd)

	assert.ErrorIs(t, err, errs.ErrOrderCreationTimeout)
	factory.AssertNotCalled(t, "Create")
	numbers.AssertNotCalled(t, "Allocate", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_NegativeTotalPersistsNothing(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	generous := map[kernel.UUID]services.CatalogPrice{}
	for _, item := range f.items {
		generous[item.ProductID] = services.CatalogPrice{UnitPrice: 100, DiscountPercent: 90}
	}
	resolver := new(MockPriceResolver)
	resolver.On("Resolve", ctx, f.items).Return(generous, nil).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNumberAllocator), resolver, f.engine, 3, 0, nil)
	_, err := h.Handle(ctx, f.cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidPricing)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_RetriesDuplicateNumber(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	mock.InOrder(
		numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000007"), nil).Once(),
		numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000008"), nil).Once(),
	)

	conflicting := new(MockOrderRepository)
	conflicting.On("Add", ctx, mock.Anything).Return(errs.ErrDuplicateOrderNumber).Once()
	firstUoW := new(MockOrderUoW)
	firstUoW.On("Begin", ctx).Return(nil).Once()
	firstUoW.On("OrderRepository").Return(conflicting).Once()
	firstUoW.On("Rollback", ctx).Return(nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	outbox := new(MockOutbox)
	outbox.On("Enqueue", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	secondUoW := new(MockOrderUoW)
	secondUoW.On("Begin", ctx).Return(nil).Once()
	secondUoW.On("OrderRepository").Return(repo).Once()
	secondUoW.On("BuyerReferenceOutbox").Return(outbox).Once()
	secondUoW.On("Commit", ctx).Return(nil).Once()
	secondUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(firstUoW).Once(),
		factory.On("Create").Return(secondUoW).Once(),
	)

	h := f.handler(t, factory, numbers)
	created, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber("ORD-2410-000008"), created.Number())
	firstUoW.AssertNotCalled(t, "Commit", mock.Anything)
	numbers.AssertExpectations(t)
	firstUoW.AssertExpectations(t)
	secondUoW.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_GenerationExhausted(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	store := newMemoryOrderStore()
	taken, err := order.NewOrderNumber(fixedClock(), 1)
	require.NoError(t, err)
	store.byNumber[taken] = nil

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).Return(taken, nil).Times(3)

	h := f.handler(t, store, numbers)
	_, err = h.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrGenerationExhausted)
	assert.Equal(t, errs.KindGenerationExhausted, errs.KindOf(err))
	assert.Contains(t, err.Error(), "after 3 attempts")
	numbers.AssertExpectations(t)
	assert.Empty(t, store.outbox)
}

func TestCreateOrderCommandHandler_Handle_CommitErrorIsNotRetried(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	commitErr := errors.New("commit failed")

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000001"), nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	outbox := new(MockOutbox)
	outbox.On("Enqueue", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("BuyerReferenceOutbox").Return(outbox).Once()
	uow.On("Commit", ctx).Return(commitErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(t, factory, numbers)
	_, err := h.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.ErrorContains(t, err, "commit failed")
	factory.AssertNumberOfCalls(t, "Create", 1)
	numbers.AssertNumberOfCalls(t, "Allocate", 1)
}

func TestCreateOrderCommandHandler_Handle_OutboxErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	outboxErr := errors.New("outbox insert failed")

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000001"), nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	outbox := new(MockOutbox)
	outbox.On("Enqueue", ctx, mock.Anything, mock.Anything).Return(outboxErr).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("BuyerReferenceOutbox").Return(outbox).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(t, factory, numbers)
	_, err := h.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.ErrorContains(t, err, outboxErr.Error())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).Return(order.OrderNumber("ORD-2410-000001"), nil).Once()
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := f.handler(t, factory, numbers)
	_, err := h.Handle(ctx, f.cmd)

	assert.Equal(t, errs.KindUpstreamUnavailable, errs.KindOf(err))
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ConcurrentCreationsGetDistinctNumbers(t *testing.T) {
	f := newCreateOrderFixture(t)
	store := newMemoryOrderStore()
	h := f.handler(t, store, commands.NewOrderNumberGenerator(&atomicSequence{}, fixedClock))

	const creations = 1000
	var wg sync.WaitGroup
	for range creations {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Handle(context.Background(), f.cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, store.byNumber, creations)
	assert.Len(t, store.outbox, creations)
}

func waitForDeadline(args mock.Arguments) {
	<-args.Get(0).(context.Context).Done()
}

func TestCreateOrderCommandHandler_Handle_StalledStoreTimesOut(t *testing.T) {
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", mock.Anything).Return(order.OrderNumber("ORD-2410-000003"), nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Run(waitForDeadline).Return(context.DeadlineExceeded).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbers, f.resolver, f.engine, 3, 50*time.Millisecond, nil)

	started := time.Now()
	_, err := h.Handle(context.Background(), f.cmd)

	require.ErrorIs(t, err, errs.ErrOrderCreationTimeout)
	assert.Equal(t, errs.KindOrderCreationTimeout, errs.KindOf(err))
	assert.Less(t, time.Since(started), 2*time.Second)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	numbers.AssertNumberOfCalls(t, "Allocate", 1)
}

func TestCreateOrderCommandHandler_Handle_StalledSequenceTimesOut(t *testing.T) {
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", mock.Anything).Run(waitForDeadline).
		Return(order.OrderNumber(""), context.DeadlineExceeded).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, f.resolver, f.engine, 3, 50*time.Millisecond, nil)
	_, err := h.Handle(context.Background(), f.cmd)

	assert.Equal(t, errs.KindOrderCreationTimeout, errs.KindOf(err))
	assert.ErrorContains(t, err, "order number sequence")
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_SequenceUnavailable(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	numbers := new(MockNumberAllocator)
	numbers.On("Allocate", ctx).
		Return(order.OrderNumber(""), errors.New("dial tcp 10.0.0.7:6379: connect: connection refused")).Once()
	factory := new(MockOrderUoWFactory)

	h := f.handler(t, factory, numbers)
	_, err := h.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.Equal(t, errs.KindUpstreamUnavailable, errs.KindOf(err))
	assert.ErrorContains(t, err, "connection refused")
	factory.AssertNotCalled(t, "Create")
}
