// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Addresses and payment are embedded with column prefixes; line items live in
// their own table. Timestamps are owned by the domain, so GORM's automatic
// tracking is switched off.
type OrderDTO struct {
	ID                    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderNumber           string        `gorm:"type:varchar(32);not null;uniqueIndex"`
	BuyerID               uuid.UUID     `gorm:"type:uuid;not null;index"`
	ShippingAddress       AddressDTO    `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress        AddressDTO    `gorm:"embedded;embeddedPrefix:billing_"`
	Payment               PaymentDTO    `gorm:"embedded;embeddedPrefix:payment_"`
	Status                string        `gorm:"type:varchar(16);not null;index"`
	Subtotal              int64         `gorm:"type:bigint;not null"`
	DiscountPercent       int64         `gorm:"type:bigint;not null"`
	TaxPercent            int64         `gorm:"type:bigint;not null"`
	ShippingCost          int64         `gorm:"type:bigint;not null"`
	TotalAmount           int64         `gorm:"type:bigint;not null"`
	Notes                 string        `gorm:"type:text"`
	TrackingNumber        string        `gorm:"type:varchar(64)"`
	EstimatedDeliveryDate int64         `gorm:"type:bigint"`
	CancelReason          string        `gorm:"type:text"`
	CreatedAt             time.Time     `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt             time.Time     `gorm:"not null;autoUpdateTime:false"`
	Version               int64         `gorm:"not null"`
	Items                 []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is an address embedded into the orders table.
type AddressDTO struct {
	Street  string `gorm:"type:varchar(255);not null"`
	City    string `gorm:"type:varchar(128);not null"`
	State   string `gorm:"type:varchar(128);not null"`
	Country string `gorm:"type:varchar(128);not null"`
	Zip     string `gorm:"type:varchar(10);not null"`
}

// PaymentDTO is the payment embedded into the orders table.
// PaidAt is epoch milliseconds, 0 when unset.
type PaymentDTO struct {
	Method        string `gorm:"type:varchar(16);not null"`
	Status        string `gorm:"type:varchar(16);not null"`
	TransactionID string `gorm:"type:varchar(128)"`
	PaidAt        int64  `gorm:"type:bigint"`
}

// LineItemDTO represents one line of an order. Position keeps the original
// line order.
type LineItemDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Quantity        int       `gorm:"not null"`
	UnitPrice       int64     `gorm:"type:bigint;not null"`
	DiscountPercent int64     `gorm:"type:bigint;not null"`
	Subtotal        int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := o.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			OrderID:         orderID,
			Position:        i,
			ProductID:       item.ProductID().Bytes(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice(),
			DiscountPercent: item.DiscountPercent(),
			Subtotal:        item.Subtotal(),
		})
	}

	payment := o.Payment()
	pricing := o.Pricing()

	return OrderDTO{
		ID:              orderID,
		OrderNumber:     o.Number().String(),
		BuyerID:         o.BuyerID().Bytes(),
		ShippingAddress: addressFromDomain(o.ShippingAddress()),
		BillingAddress:  addressFromDomain(o.BillingAddress()),
		Payment: PaymentDTO{
			Method:        string(payment.Method()),
			Status:        string(payment.Status()),
			TransactionID: payment.TransactionID(),
			PaidAt:        payment.PaidAt().Int64(),
		},
		Status:                o.Status().String(),
		Subtotal:              pricing.Subtotal(),
		DiscountPercent:       pricing.DiscountPercent(),
		TaxPercent:            pricing.TaxPercent(),
		ShippingCost:          pricing.ShippingCost(),
		TotalAmount:           pricing.TotalAmount(),
		Notes:                 o.Notes(),
		TrackingNumber:        o.TrackingNumber(),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate().Int64(),
		CancelReason:          o.CancelReason(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Version:               o.Version(),
		Items:                 itemDTOs,
	}
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
		Street:  a.Street(),
		City:    a.City(),
		State:   a.State(),
		Country: a.Country(),
		Zip:     a.Zip(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Every value object is rebuilt through its constructor, so a corrupted row
// surfaces as a validation error instead of an invalid aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	buyerID, buyerErr := kernel.UUIDFromBytes(dto.BuyerID[:])
	shipping, shippingErr := addressToDomain(dto.ShippingAddress)
	billing, billingErr := addressToDomain(dto.BillingAddress)
	payment, paymentErr := order.NewPayment(
		order.PaymentMethod(dto.Payment.Method),
		order.PaymentStatus(dto.Payment.Status),
		dto.Payment.TransactionID,
		kernel.EpochMillis(dto.Payment.PaidAt),
	)
	status, statusErr := order.ParseStatus(dto.Status)
	pricing, pricingErr := order.NewPricing(
		dto.Subtotal, dto.DiscountPercent, dto.TaxPercent, dto.ShippingCost, dto.TotalAmount,
	)
	if err := errors.Join(idErr, buyerErr, shippingErr, billingErr, paymentErr, statusErr, pricingErr); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, err := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(productID, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.DiscountPercent)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:                    id,
		Number:                order.OrderNumber(dto.OrderNumber),
		BuyerID:               buyerID,
		ShippingAddress:       shipping,
		BillingAddress:        billing,
		Items:                 items,
		Pricing:               pricing,
		Payment:               payment,
		Status:                status,
		Notes:                 dto.Notes,
		TrackingNumber:        dto.TrackingNumber,
		EstimatedDeliveryDate: kernel.EpochMillis(dto.EstimatedDeliveryDate),
		CancelReason:          dto.CancelReason,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		Version:               dto.Version,
	})
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	return order.NewAddress(dto.Street, dto.City, dto.State, dto.Country, dto.Zip)
}
