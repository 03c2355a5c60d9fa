package queries

import (
	"fmt"
	"slices"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// AddressView is the read representation of an order.Address.
type AddressView struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// LineItemView is the read representation of an order.LineItem.
type LineItemView struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unitPrice"`
	DiscountPercent int64  `json:"discountPercent"`
	Subtotal        int64  `json:"subtotal"`
}

// PaymentView is the read representation of an order.Payment.
// PaidAt is nil until the payment is settled.
type PaymentView struct {
	Method        string `json:"method"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
	PaidAt        *int64 `json:"paidAt,omitempty"`
}

// OrderView is the read representation of an order, including the derived
// age and cancellation eligibility. Money is in minor currency units.
type OrderView struct {
	OrderNumber           string         `json:"orderNumber"`
	BuyerID               string         `json:"buyerId"`
	ShippingAddress       AddressView    `json:"shippingAddress"`
	BillingAddress        AddressView    `json:"billingAddress"`
	Items                 []LineItemView `json:"items"`
	Payment               PaymentView    `json:"payment"`
	Status                string         `json:"status"`
	Subtotal              int64          `json:"subtotal"`
	DiscountPercent       int64          `json:"discountPercent"`
	TaxPercent            int64          `json:"taxPercent"`
	ShippingCost          int64          `json:"shippingCost"`
	TotalAmount           int64          `json:"totalAmount"`
	Notes                 string         `json:"notes,omitempty"`
	TrackingNumber        string         `json:"trackingNumber,omitempty"`
	EstimatedDeliveryDate *int64         `json:"estimatedDeliveryDate,omitempty"`
	CancelReason          string         `json:"cancelReason,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	Version               int64          `json:"version"`
	Age                   int            `json:"age"`
	CanCancel             bool           `json:"canCancel"`
}

// NewOrderView maps an aggregate to its view; now is used for the age.
func NewOrderView(o *order.Order, now time.Time) OrderView {
	items := o.Items()
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, LineItemView{
			ProductID:       item.ProductID().String(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice(),
			DiscountPercent: item.DiscountPercent(),
			Subtotal:        item.Subtotal(),
		})
	}

	payment := o.Payment()
	pricing := o.Pricing()

	return OrderView{
		OrderNumber:     o.Number().String(),
		BuyerID:         o.BuyerID().String(),
		ShippingAddress: newAddressView(o.ShippingAddress()),
		BillingAddress:  newAddressView(o.BillingAddress()),
		Items:           views,
		Payment: PaymentView{
			Method:        string(payment.Method()),
			Status:        string(payment.Status()),
			TransactionID: payment.TransactionID(),
			PaidAt:        epochMillisPtr(payment.PaidAt().Int64()),
		},
		Status:                o.Status().String(),
		Subtotal:              pricing.Subtotal(),
		DiscountPercent:       pricing.DiscountPercent(),
		TaxPercent:            pricing.TaxPercent(),
		ShippingCost:          pricing.ShippingCost(),
		TotalAmount:           pricing.TotalAmount(),
		Notes:                 o.Notes(),
		TrackingNumber:        o.TrackingNumber(),
		EstimatedDeliveryDate: epochMillisPtr(o.EstimatedDeliveryDate().Int64()),
		CancelReason:          o.CancelReason(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Version:               o.Version(),
		Age:                   o.Age(now),
		CanCancel:             o.CanCancel(),
	}
}

func newAddressView(a order.Address) AddressView {
	return AddressView{
		Street:  a.Street(),
		City:    a.City(),
		State:   a.State(),
		Country: a.Country(),
		Zip:     a.Zip(),
	}
}

func epochMillisPtr(ms int64) *int64 {
	if ms == 0 {
		return nil
	}
	return &ms
}

// orderFields is the projection whitelist, keyed by JSON field name.
var orderFields = map[string]func(OrderView) any{
	"orderNumber":           func(v OrderView) any { return v.OrderNumber },
	"buyerId":               func(v OrderView) any { return v.BuyerID },
	"shippingAddress":       func(v OrderView) any { return v.ShippingAddress },
	"billingAddress":        func(v OrderView) any { return v.BillingAddress },
	"items":                 func(v OrderView) any { return v.Items },
	"payment":               func(v OrderView) any { return v.Payment },
	"status":                func(v OrderView) any { return v.Status },
	"subtotal":              func(v OrderView) any { return v.Subtotal },
	"discountPercent":       func(v OrderView) any { return v.DiscountPercent },
	"taxPercent":            func(v OrderView) any { return v.TaxPercent },
	"shippingCost":          func(v OrderView) any { return v.ShippingCost },
	"totalAmount":           func(v OrderView) any { return v.TotalAmount },
	"notes":                 func(v OrderView) any { return v.Notes },
	"trackingNumber":        func(v OrderView) any { return v.TrackingNumber },
	"estimatedDeliveryDate": func(v OrderView) any { return v.EstimatedDeliveryDate },
	"cancelReason":          func(v OrderView) any { return v.CancelReason },
	"createdAt":             func(v OrderView) any { return v.CreatedAt },
	"updatedAt":             func(v OrderView) any { return v.UpdatedAt },
	"version":               func(v OrderView) any { return v.Version },
	"age":                   func(v OrderView) any { return v.Age },
	"canCancel":             func(v OrderView) any { return v.CanCancel },
}

// OrderFields lists the field names accepted by a projection, sorted.
func OrderFields() []string {
	fields := make([]string, 0, len(orderFields))
	for name := range orderFields {
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

// validateFields rejects names outside of the whitelist and drops duplicates.
func validateFields(fields []string) ([]string, error) {
	unique := make([]string, 0, len(fields))
	for _, name := range fields {
		if _, ok := orderFields[name]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q", errs.ErrFieldProjectionIsInvalid, name)
		}
		if !slices.Contains(unique, name) {
			unique = append(unique, name)
		}
	}
	return unique, nil
}

// Project returns only the named fields. The names must come from OrderFields.
func (v OrderView) Project(fields []string) map[string]any {
	projection := make(map[string]any, len(fields))
	for _, name := range fields {
		if get, ok := orderFields[name]; ok {
			projection[name] = get(v)
		}
	}
	return projection
}
