package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"go.uber.org/zap"
)

// DefaultOrderNumberAttempts bounds how often creation allocates a new number
// after a uniqueness conflict.
const DefaultOrderNumberAttempts = 3

// CreateOrderCommandHandler places orders. It resolves catalog prices,
// computes pricing, allocates an order number and persists the order together
// with its buyer reference outbox entry in one transaction.
//
// Nothing is persisted when any step fails. A duplicate order number discards
// the attempt and allocates a fresh number; Commit itself is never retried.
// Every attempt runs under storeTimeout; a store that misses it fails with
// ErrOrderCreationTimeout, other store failures with ErrUpstreamUnavailable.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numbers, resolver, engine, 3, 5*time.Second, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrGenerationExhausted) {
//	    // the order number sequence keeps colliding, ask the caller to retry later
//	}
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	numbers      OrderNumberAllocator
	resolver     PriceResolver
	engine       services.PricingEngine
	maxAttempts  int
	storeTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A non-positive maxAttempts falls back to DefaultOrderNumberAttempts.
// storeTimeout bounds one allocate and persist attempt; zero leaves it unbounded.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	numbers OrderNumberAllocator,
	resolver PriceResolver,
	engine services.PricingEngine,
	maxAttempts int,
	storeTimeout time.Duration,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderNumberAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		numbers:      numbers,
		resolver:     resolver,
		engine:       engine,
		maxAttempts:  maxAttempts,
		storeTimeout: storeTimeout,
		now:          time.Now,
		logger:       logger,
	}
}

// Handle processes the order creation command and returns the persisted order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	prices, err := h.resolver.Resolve(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	priced, err := h.engine.Price(cmd.Items(), prices)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPendingPayment(cmd.PaymentMethod())
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		o, err := h.place(ctx, cmd, payment, priced)
		if errors.Is(err, errs.ErrDuplicateOrderNumber) {
			h.logger.Warn("order number already taken, allocating another",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}

		h.logger.Info("order created",
			zap.String("order_number", o.Number().String()),
			zap.String("buyer_id", o.BuyerID().String()),
			zap.Int64("total_amount", o.Pricing().TotalAmount()))
		return o, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", errs.ErrGenerationExhausted, h.maxAttempts)
}

// place allocates a number and persists one order attempt under the store deadline.
func (h *CreateOrderCommandHandler) place(
	ctx context.Context,
	cmd CreateOrderCommand,
	payment order.Payment,
	priced services.PricedOrder,
) (*order.Order, error) {
	ctx, cancel := withStoreDeadline(ctx, h.storeTimeout)
	defer cancel()

	number, err := h.numbers.Allocate(ctx)
	if err != nil {
		return nil, storeError(ctx, "order number sequence", err, errs.NewOrderCreationTimeoutError)
	}

	now := h.now()
	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.BuyerID(),
		cmd.ShippingAddress(), cmd.BillingAddress(), payment, priced.Items, priced.Pricing, now)
	if err != nil {
		return nil, err
	}
	if cmd.Notes() != "" {
		o.SetNotes(cmd.Notes(), now)
	}

	err = h.persist(ctx, o)
	if errors.Is(err, errs.ErrDuplicateOrderNumber) {
		return nil, err
	}
	if err != nil {
		return nil, storeError(ctx, "order store", err, errs.NewOrderCreationTimeoutError)
	}
	return o, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	ref := ports.OrderReference{OrderID: o.ID(), OrderNumber: o.Number()}
	if err := uow.BuyerReferenceOutbox().Enqueue(ctx, o.BuyerID(), ref); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// withStoreDeadline bounds store and sequence calls. A non-positive timeout
// leaves ctx unchanged.
func withStoreDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError classifies a failed store or sequence call. Errors that already
// carry a kind pass through, a missed deadline is reported through onDeadline
// and anything else means the backend is unavailable.
func storeError(
	ctx context.Context,
	service string,
	err error,
	onDeadline func(service string, cause error) *errs.UpstreamError,
) error {
	if errs.KindOf(err) != errs.KindInternal {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return onDeadline(service, err)
	}
	return errs.NewUpstreamUnavailableError(service, err)
}
