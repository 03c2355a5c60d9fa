package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"

	"go.uber.org/zap"
)

// UpdateOrderCommandHandler applies a patch to an existing order under
// optimistic concurrency control.
//
// Changes are applied in a fixed order: items, addresses, payment, details and
// finally the status, so that a patch which both replaces items and confirms
// the order is checked against the status the order had when it was loaded.
//
// Example:
//
//	handler := NewUpdateOrderCommandHandler(uowFactory, resolver, engine, 5*time.Second, logger)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrentModification) {
//	    // reload the order and retry
//	}
type UpdateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	resolver     PriceResolver
	engine       services.PricingEngine
	storeTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
// storeTimeout bounds the whole transaction; zero leaves it unbounded.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	resolver PriceResolver,
	engine services.PricingEngine,
	storeTimeout time.Duration,
	logger *zap.Logger,
) UpdateOrderCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return UpdateOrderCommandHandler{
		uowFactory:   uowFactory,
		resolver:     resolver,
		engine:       engine,
		storeTimeout: storeTimeout,
		now:          time.Now,
		logger:       logger,
	}
}

// Handle processes the update and returns the persisted order.
//
// Returns:
//   - *errs.ObjectNotFoundError for unknown order numbers
//   - *errs.IllegalStatusTransitionError for a rejected status change
//   - *errs.ConcurrentModificationError when the version check fails
//   - *errs.UpstreamError with ErrUpstreamUnavailable when the store fails or
//     misses its deadline
//   - validation and pricing errors of the patched fields
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	patch := cmd.Patch()

	var repriced *services.PricedOrder
	if patch.Items != nil {
		prices, err := h.resolver.Resolve(ctx, patch.Items)
		if err != nil {
			return nil, err
		}
		priced, err := h.engine.Price(patch.Items, prices)
		if err != nil {
			return nil, err
		}
		repriced = &priced
	}

	o, err := h.save(ctx, cmd.OrderNumber(), patch, repriced)
	if err != nil {
		return nil, err
	}

	h.logger.Info("order updated",
		zap.String("order_number", o.Number().String()),
		zap.Stringer("status", o.Status()),
		zap.Int64("version", o.Version()))
	return o, nil
}

// save loads, patches and writes the order in one transaction bounded by storeTimeout.
func (h *UpdateOrderCommandHandler) save(
	ctx context.Context,
	number order.OrderNumber,
	patch OrderPatch,
	repriced *services.PricedOrder,
) (*order.Order, error) {
	ctx, cancel := withStoreDeadline(ctx, h.storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, h.storeError(ctx, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, h.storeError(ctx, err)
	}

	if patch.ExpectedVersion != nil && *patch.ExpectedVersion != o.Version() {
		return nil, errs.NewConcurrentModificationError("order", o.Number().String(), *patch.ExpectedVersion)
	}

	if err = h.apply(o, patch, repriced); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, h.storeError(ctx, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, h.storeError(ctx, err)
	}
	return o, nil
}

// storeError reports store failures of an update as unavailability, a missed
// deadline included; the order creation timeout kind belongs to creation only.
func (h *UpdateOrderCommandHandler) storeError(ctx context.Context, err error) error {
	return storeError(ctx, "order store", err, errs.NewUpstreamUnavailableError)
}

func (h *UpdateOrderCommandHandler) apply(o *order.Order, patch OrderPatch, repriced *services.PricedOrder) error {
	now := h.now()

	if repriced != nil {
		if err := o.ReplaceItems(repriced.Items, repriced.Pricing, now); err != nil {
			return err
		}
	}
	if patch.ShippingAddress != nil {
		if err := o.ChangeShippingAddress(*patch.ShippingAddress, now); err != nil {
			return err
		}
	}
	if patch.BillingAddress != nil {
		if err := o.ChangeBillingAddress(*patch.BillingAddress, now); err != nil {
			return err
		}
	}
	if p := patch.Payment; p != nil {
		payment, err := o.Payment().WithUpdate(p.Status, p.TransactionID, p.PaidAt)
		if err != nil {
			return err
		}
		if err = o.UpdatePayment(payment, now); err != nil {
			return err
		}
	}
	if patch.Notes != nil {
		o.SetNotes(*patch.Notes, now)
	}
	if patch.TrackingNumber != nil {
		o.SetTrackingNumber(*patch.TrackingNumber, now)
	}
	if patch.EstimatedDeliveryDate != nil {
		if err := o.SetEstimatedDeliveryDate(*patch.EstimatedDeliveryDate, now); err != nil {
			return err
		}
	}

	if patch.Status == nil {
		return nil
	}
	if *patch.Status == order.Cancelled {
		reason := ""
		if patch.CancelReason != nil {
			reason = *patch.CancelReason
		}
		return o.Cancel(reason, now)
	}
	return o.TransitionTo(*patch.Status, now)
}
