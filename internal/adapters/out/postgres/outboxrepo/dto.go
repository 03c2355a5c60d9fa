// Package outboxrepo persists buyer order references until the relay job
// delivers them to the buyer directory.
package outboxrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

// BuyerReferenceDTO is one outbox row. DeliveredAt stays nil until the
// buyer directory accepted the reference.
type BuyerReferenceDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	BuyerID     uuid.UUID  `gorm:"type:uuid;not null"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderNumber string     `gorm:"type:varchar(32);not null"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	DeliveredAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox entries.
func (BuyerReferenceDTO) TableName() string {
	return "buyer_order_references"
}

func toPending(dto BuyerReferenceDTO) (ports.PendingBuyerReference, error) {
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return ports.PendingBuyerReference{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.PendingBuyerReference{}, err
	}

	return ports.PendingBuyerReference{
		ID:      dto.ID,
		BuyerID: buyerID,
		Reference: ports.OrderReference{
			OrderID:     orderID,
			OrderNumber: order.OrderNumber(dto.OrderNumber),
		},
		Attempts:  dto.Attempts,
		CreatedAt: dto.CreatedAt,
	}, nil
}
