package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AddressRequest is a shipping or billing address as sent by clients.
type AddressRequest struct {
	Street  string `json:"street" example:"221B Baker Street"`
	City    string `json:"city" example:"London"`
	State   string `json:"state" example:"LDN"`
	Country string `json:"country" example:"UK"`
	Zip     string `json:"zip" example:"12345"`
}

// ItemRequest references a catalog product. Prices are never accepted from clients.
type ItemRequest struct {
	ProductID string `json:"productId" example:"6f1c3a52-7c2e-4a53-9d0e-0b8f2f0f4a11"`
	Quantity  int    `json:"quantity" example:"2"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. Undeclared fields,
// client prices included, are ignored.
type CreateOrderRequest struct {
	BuyerID         string          `json:"buyerId" example:"0b9a4a6e-55a4-4f39-bb0e-8d7b1f9f2c10"`
	ShippingAddress *AddressRequest `json:"shippingAddress"`
	BillingAddress  *AddressRequest `json:"billingAddress"`
	PaymentMethod   string          `json:"paymentMethod" example:"UPI"`
	Items           []ItemRequest   `json:"items"`
	Notes           string          `json:"notes,omitempty"`
}

// PaymentPatchRequest lists the payment fields a client may change.
type PaymentPatchRequest struct {
	Status        *string `json:"status,omitempty" example:"COMPLETED"`
	TransactionID *string `json:"transactionId,omitempty"`
	PaidAt        *int64  `json:"paidAt,omitempty" example:"1718000000000"`
}

// UpdateOrderRequest is the body of PUT /api/v1/orders/{orderNumber}.
// Every field is optional; unknown fields are rejected.
type UpdateOrderRequest struct {
	ExpectedVersion       *int64               `json:"expectedVersion,omitempty" example:"1"`
	Status                *string              `json:"status,omitempty" example:"CONFIRMED"`
	CancelReason          *string              `json:"cancelReason,omitempty"`
	Items                 []ItemRequest        `json:"items,omitempty"`
	ShippingAddress       *AddressRequest      `json:"shippingAddress,omitempty"`
	BillingAddress        *AddressRequest      `json:"billingAddress,omitempty"`
	Payment               *PaymentPatchRequest `json:"payment,omitempty"`
	Notes                 *string              `json:"notes,omitempty"`
	TrackingNumber        *string              `json:"trackingNumber,omitempty"`
	EstimatedDeliveryDate *int64               `json:"estimatedDeliveryDate,omitempty" example:"1718600000000"`
}

// decodeStrict reads exactly one JSON document from the request body and
// rejects fields the target type does not declare.
func decodeStrict(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	return decodeOne(dec, dst)
}

// decodeLenient reads exactly one JSON document and drops undeclared fields,
// so prices or totals sent along with an order never reach the command.
func decodeLenient(c echo.Context, dst any) error {
	return decodeOne(json.NewDecoder(c.Request().Body), dst)
}

func decodeOne(dec *json.Decoder, dst any) error {
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValueIsRequiredError("request body")
		}
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if dec.More() {
		return errs.NewValueIsInvalidErrorWithCause("request body", errors.New("unexpected data after the JSON document"))
	}
	return nil
}

func (r *AddressRequest) toDomain(name string) (order.Address, error) {
	if r == nil {
		return order.Address{}, errs.NewValueIsRequiredError(name)
	}
	address, err := order.NewAddress(r.Street, r.City, r.State, r.Country, r.Zip)
	if err != nil {
		return order.Address{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return address, nil
}

func toRequestedItems(items []ItemRequest) ([]services.RequestedItem, error) {
	requested := make([]services.RequestedItem, 0, len(items))
	var problems []error
	for i, item := range items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", i), err))
			continue
		}
		requested = append(requested, services.RequestedItem{ProductID: productID, Quantity: item.Quantity})
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return requested, nil
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	buyerID, buyerErr := kernel.UUIDFromString(r.BuyerID)
	if buyerErr != nil {
		buyerErr = errs.NewValueIsInvalidErrorWithCause("buyerId", buyerErr)
	}
	shipping, shippingErr := r.ShippingAddress.toDomain("shippingAddress")
	billing, billingErr := r.BillingAddress.toDomain("billingAddress")
	items, itemsErr := toRequestedItems(r.Items)

	// a bad quantity is reported on its own, as the command does
	if itemsErr == nil {
		if err := services.ValidateRequest(items); errors.Is(err, errs.ErrInvalidQuantity) {
			return commands.CreateOrderCommand{}, err
		}
	}

	if err := errors.Join(buyerErr, shippingErr, billingErr, itemsErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		buyerID, shipping, billing, order.PaymentMethod(r.PaymentMethod), items, r.Notes)
}

func (r UpdateOrderRequest) toCommand(orderNumber string) (commands.UpdateOrderCommand, error) {
	number, err := order.ParseOrderNumber(orderNumber)
	if err != nil {
		return commands.UpdateOrderCommand{}, err
	}

	patch, err := r.toPatch()
	if err != nil {
		return commands.UpdateOrderCommand{}, err
	}

	return commands.NewUpdateOrderCommand(number, patch)
}

func (r UpdateOrderRequest) toPatch() (commands.OrderPatch, error) {
	patch := commands.OrderPatch{
		ExpectedVersion: r.ExpectedVersion,
		CancelReason:    r.CancelReason,
		Notes:           r.Notes,
		TrackingNumber:  r.TrackingNumber,
	}
	var problems []error

	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		problems = append(problems, err)
		patch.Status = &status
	}
	if r.Items != nil {
		items, err := toRequestedItems(r.Items)
		problems = append(problems, err)
		if items == nil {
			items = []services.RequestedItem{}
		}
		patch.Items = items
	}
	if r.ShippingAddress != nil {
		address, err := r.ShippingAddress.toDomain("shippingAddress")
		problems = append(problems, err)
		patch.ShippingAddress = &address
	}
	if r.BillingAddress != nil {
		address, err := r.BillingAddress.toDomain("billingAddress")
		problems = append(problems, err)
		patch.BillingAddress = &address
	}
	if r.Payment != nil {
		payment, err := r.Payment.toPatch()
		problems = append(problems, err)
		patch.Payment = payment
	}
	if r.EstimatedDeliveryDate != nil {
		date, err := kernel.NewEpochMillis(*r.EstimatedDeliveryDate)
		problems = append(problems, err)
		patch.EstimatedDeliveryDate = &date
	}

	if err := errors.Join(problems...); err != nil {
		return commands.OrderPatch{}, err
	}
	return patch, nil
}

func (r PaymentPatchRequest) toPatch() (*commands.PaymentPatch, error) {
	patch := &commands.PaymentPatch{TransactionID: r.TransactionID}

	if r.Status != nil {
		status := order.PaymentStatus(*r.Status)
		if err := status.Validate(); err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	if r.PaidAt != nil {
		paidAt, err := kernel.NewEpochMillis(*r.PaidAt)
		if err != nil {
			return nil, err
		}
		patch.PaidAt = &paidAt
	}
	return patch, nil
}
