package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

const millisPerDay = 86_400_000

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the order lifecycle. It owns the immutable
// order number, the priced line items and the status state machine.
//
// Order follows these invariants:
//   - id and orderNumber are assigned once, at construction
//   - subtotal equals the sum of line subtotals
//   - discountPercent equals the sum of line discount percentages
//   - totalAmount follows the floor-division formula and is never negative
//   - status only moves along the transitions allowed by Status
//
// Every mutating method re-validates the invariants it touches and bumps
// updatedAt. version is owned by persistence: it is read for optimistic
// concurrency checks and advanced after a successful write.
type Order struct {
	id      kernel.UUID
	number  OrderNumber
	buyerID kernel.UUID

	shippingAddress Address
	billingAddress  Address
	items           []LineItem
	pricing         Pricing
	payment         Payment
	status          Status

	notes                 string
	trackingNumber        string
	estimatedDeliveryDate kernel.EpochMillis
	cancelReason          string

	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder creates a Pending order. The pricing must have been computed from
// items; a mismatch is rejected with InvalidPricing.
//
// Example:
//
//	number, _ := order.NewOrderNumber(now, seq)
//	o, err := order.NewOrder(kernel.NewUUID(), number, buyerID, shipping, billing, payment, items, pricing, now)
//	if err != nil {
//	    // validation or pricing error, nothing to persist
//	}
func NewOrder(
	id kernel.UUID,
	number OrderNumber,
	buyerID kernel.UUID,
	shippingAddress Address,
	billingAddress Address,
	payment Payment,
	items []LineItem,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setBuyerID(buyerID),
		o.setShippingAddress(shippingAddress),
		o.setBillingAddress(billingAddress),
		o.setPayment(payment),
		o.setItems(items, pricing),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the complete persisted state of an order, used to rebuild the
// aggregate from storage.
type State struct {
	ID                    kernel.UUID
	Number                OrderNumber
	BuyerID               kernel.UUID
	ShippingAddress       Address
	BillingAddress        Address
	Items                 []LineItem
	Pricing               Pricing
	Payment               Payment
	Status                Status
	Notes                 string
	TrackingNumber        string
	EstimatedDeliveryDate kernel.EpochMillis
	CancelReason          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int64
}

// RestoreOrder rebuilds an order from persisted state, re-checking every
// invariant so that corrupted rows never reach the domain.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		notes:          s.Notes,
		trackingNumber: s.TrackingNumber,
		cancelReason:   s.CancelReason,
		createdAt:      s.CreatedAt.UTC(),
		updatedAt:      s.UpdatedAt.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setBuyerID(s.BuyerID),
		o.setShippingAddress(s.ShippingAddress),
		o.setBillingAddress(s.BillingAddress),
		o.setPayment(s.Payment),
		o.setItems(s.Items, s.Pricing),
		o.setStatus(s.Status),
		o.setEstimatedDeliveryDate(s.EstimatedDeliveryDate),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the internal identity.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the immutable order number.
func (o *Order) Number() OrderNumber { return o.number }

// BuyerID returns the buyer reference.
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }

// ShippingAddress returns the shipping address.
func (o *Order) ShippingAddress() Address { return o.shippingAddress }

// BillingAddress returns the billing address.
func (o *Order) BillingAddress() Address { return o.billingAddress }

// Items returns a copy of the line items in request order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the order level monetary fields.
func (o *Order) Pricing() Pricing { return o.pricing }

// Payment returns the payment details.
func (o *Order) Payment() Payment { return o.payment }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Notes returns the buyer notes.
func (o *Order) Notes() string { return o.notes }

// TrackingNumber returns the carrier tracking number, or "".
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// EstimatedDeliveryDate returns the delivery estimate, or the zero value.
func (o *Order) EstimatedDeliveryDate() kernel.EpochMillis { return o.estimatedDeliveryDate }

// CancelReason returns why the order was cancelled, or "".
func (o *Order) CancelReason() string { return o.cancelReason }

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last mutation in UTC.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version returns the optimistic concurrency version of the loaded state.
func (o *Order) Version() int64 { return o.version }

// AdvanceVersion is called by repositories after a successful write.
func (o *Order) AdvanceVersion() { o.version++ }

// CanCancel reports whether the order may still be cancelled.
func (o *Order) CanCancel() bool {
	return o.status.CanCancel()
}

// Age returns the number of whole days between createdAt and now.
// It is 0 when createdAt is unset or lies in the future.
//
// Example:
//
//	// created three days and one hour ago
//	o.Age(time.Now()) // 3
func (o *Order) Age(now time.Time) int {
	if o.createdAt.IsZero() {
		return 0
	}
	elapsed := now.UnixMilli() - o.createdAt.UnixMilli()
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / millisPerDay)
}

// TransitionTo moves the order to target if the state machine allows it.
//
// Returns:
//   - nil on success
//   - *errs.IllegalStatusTransitionError carrying current and requested status
func (o *Order) TransitionTo(target Status, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.touch(now)
	return nil
}

// Cancel moves the order to Cancelled and records the optional reason.
func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.TransitionTo(Cancelled, now); err != nil {
		return err
	}
	o.cancelReason = strings.TrimSpace(reason)
	return nil
}

// ReplaceItems swaps the whole line item set together with its freshly
// computed pricing. Items can only change while the order is Pending or Confirmed.
func (o *Order) ReplaceItems(items []LineItem, pricing Pricing, now time.Time) error {
	if o.status != Pending && o.status != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause(
			"items",
			fmt.Errorf("items of a %s order can not be changed", o.status),
		)
	}

	if err := o.setItems(items, pricing); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// ChangeShippingAddress replaces the shipping address before the order ships.
func (o *Order) ChangeShippingAddress(address Address, now time.Time) error {
	if !o.status.CanCancel() {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipping address",
			fmt.Errorf("shipping address of a %s order can not be changed", o.status),
		)
	}
	if err := o.setShippingAddress(address); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// ChangeBillingAddress replaces the billing address.
func (o *Order) ChangeBillingAddress(address Address, now time.Time) error {
	if err := o.setBillingAddress(address); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// UpdatePayment replaces the payment details. The payment method is fixed at placement.
func (o *Order) UpdatePayment(payment Payment, now time.Time) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	if payment.Method() != o.payment.Method() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method",
			fmt.Errorf("payment method can not change from %s to %s", o.payment.Method(), payment.Method()),
		)
	}
	o.payment = payment
	o.touch(now)
	return nil
}

// SetNotes replaces the free-form notes.
func (o *Order) SetNotes(notes string, now time.Time) {
	o.notes = strings.TrimSpace(notes)
	o.touch(now)
}

// SetTrackingNumber records the carrier tracking number.
func (o *Order) SetTrackingNumber(trackingNumber string, now time.Time) {
	o.trackingNumber = strings.TrimSpace(trackingNumber)
	o.touch(now)
}

// SetEstimatedDeliveryDate records the delivery estimate; the zero value clears it.
func (o *Order) SetEstimatedDeliveryDate(date kernel.EpochMillis, now time.Time) error {
	if err := o.setEstimatedDeliveryDate(date); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer", err)
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setShippingAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setBillingAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("billing address", err)
	}
	o.billingAddress = address
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("payment", err)
	}
	o.payment = payment
	return nil
}

func (o *Order) setItems(items []LineItem, pricing Pricing) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if err := pricing.Validate(); err != nil {
		return err
	}
	if err := pricing.matches(items); err != nil {
		return err
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	o.pricing = pricing
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setEstimatedDeliveryDate(date kernel.EpochMillis) error {
	if !date.IsZero() {
		if _, err := kernel.NewEpochMillis(date.Int64()); err != nil {
			return err
		}
	}
	o.estimatedDeliveryDate = date
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version <= 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	o.version = version
	return nil
}
