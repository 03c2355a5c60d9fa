package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request to place an order.
// It carries product references and quantities only; prices are always
// resolved from the catalog by the handler.
//
// Example:
//
//	shipping, _ := order.NewAddress("12 Main Street", "Springfield", "IL", "US", "62704")
//	cmd, err := NewCreateOrderCommand(buyerID, shipping, shipping, order.UPI,
//	    []services.RequestedItem{{ProductID: productID, Quantity: 2}}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyerID         kernel.UUID
	shippingAddress order.Address
	billingAddress  order.Address
	paymentMethod   order.PaymentMethod
	items           []services.RequestedItem
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. All violations are reported
// together, except that a non-positive quantity is reported as
// *errs.InvalidQuantityError on its own.
func NewCreateOrderCommand(
	buyerID kernel.UUID,
	shippingAddress order.Address,
	billingAddress order.Address,
	paymentMethod order.PaymentMethod,
	items []services.RequestedItem,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setItems(items); err != nil {
		return CreateOrderCommand{}, err
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setShippingAddress(shippingAddress),
		cmd.setBillingAddress(billingAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BuyerID returns the buyer placing the order.
func (c CreateOrderCommand) BuyerID() kernel.UUID { return c.buyerID }

// ShippingAddress returns where the order goes.
func (c CreateOrderCommand) ShippingAddress() order.Address { return c.shippingAddress }

// BillingAddress returns the invoice address.
func (c CreateOrderCommand) BillingAddress() order.Address { return c.billingAddress }

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// Items returns a copy of the requested items in request order.
func (c CreateOrderCommand) Items() []services.RequestedItem {
	items := make([]services.RequestedItem, len(c.items))
	copy(items, c.items)
	return items
}

// Notes returns the optional buyer notes.
func (c CreateOrderCommand) Notes() string { return c.notes }

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer", err)
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setBillingAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("billing address", err)
	}
	c.billingAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.RequestedItem) error {
	if err := services.ValidateRequest(items); err != nil {
		return err
	}
	c.items = make([]services.RequestedItem, len(items))
	copy(c.items, items)
	return nil
}
