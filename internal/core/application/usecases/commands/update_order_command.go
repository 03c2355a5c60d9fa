package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// PaymentPatch lists the payment fields that may change after placement.
// Nil fields are left untouched.
type PaymentPatch struct {
	Status        *order.PaymentStatus
	TransactionID *string
	PaidAt        *kernel.EpochMillis
}

// OrderPatch lists the order fields a caller may change. Nil fields are left
// untouched; a non-nil Items replaces the whole item set and triggers full
// re-pricing. Pricing fields can not be patched.
type OrderPatch struct {
	ExpectedVersion       *int64
	Status                *order.Status
	CancelReason          *string
	Items                 []services.RequestedItem
	ShippingAddress       *order.Address
	BillingAddress        *order.Address
	Payment               *PaymentPatch
	Notes                 *string
	TrackingNumber        *string
	EstimatedDeliveryDate *kernel.EpochMillis
}

func (p OrderPatch) isEmpty() bool {
	return p.Status == nil && p.CancelReason == nil && p.Items == nil &&
		p.ShippingAddress == nil && p.BillingAddress == nil && p.Payment == nil &&
		p.Notes == nil && p.TrackingNumber == nil && p.EstimatedDeliveryDate == nil
}

// UpdateOrderCommand represents a change to an existing order.
//
// Example:
//
//	shipped := order.Shipped
//	tracking := "1Z999"
//	cmd, err := NewUpdateOrderCommand("ORD-2410-000042", OrderPatch{
//	    Status:         &shipped,
//	    TrackingNumber: &tracking,
//	})
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber order.OrderNumber
	patch       OrderPatch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the order number and the patch. An empty
// patch is rejected.
func NewUpdateOrderCommand(orderNumber order.OrderNumber, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to change.
func (c UpdateOrderCommand) OrderNumber() order.OrderNumber { return c.orderNumber }

// Patch returns the requested changes.
func (c UpdateOrderCommand) Patch() OrderPatch { return c.patch }

func (c *UpdateOrderCommand) setOrderNumber(orderNumber order.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.isEmpty() {
		return errs.NewValueIsRequiredError("patch")
	}

	var problems []error
	if patch.ExpectedVersion != nil && *patch.ExpectedVersion <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("expected version", *patch.ExpectedVersion, 1, "unbounded"))
	}
	if patch.Status != nil {
		problems = append(problems, patch.Status.Validate())
	}
	if patch.Items != nil {
		problems = append(problems, services.ValidateRequest(patch.Items))
	}
	if patch.ShippingAddress != nil {
		problems = append(problems, patch.ShippingAddress.Validate())
	}
	if patch.BillingAddress != nil {
		problems = append(problems, patch.BillingAddress.Validate())
	}
	if patch.Payment != nil && patch.Payment.Status != nil {
		problems = append(problems, patch.Payment.Status.Validate())
	}
	if patch.CancelReason != nil && (patch.Status == nil || *patch.Status != order.Cancelled) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"cancel reason", errors.New("only allowed together with status CANCELLED")))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	if patch.Items != nil {
		items := make([]services.RequestedItem, len(patch.Items))
		copy(items, patch.Items)
		patch.Items = items
	}
	c.patch = patch
	return nil
}
