package outboxrepo

import (
	"context"
	"strconv"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBuyerReferenceOutbox implements ports.BuyerReferenceOutbox using GORM.
type GormBuyerReferenceOutbox struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormBuyerReferenceOutbox creates an outbox bound to db, which may be a
// transaction.
func NewGormBuyerReferenceOutbox(db *gorm.DB) *GormBuyerReferenceOutbox {
	return &GormBuyerReferenceOutbox{db: db, now: time.Now}
}

// Enqueue records ref for buyerID.
func (r *GormBuyerReferenceOutbox) Enqueue(ctx context.Context, buyerID kernel.UUID, ref ports.OrderReference) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if err := ref.OrderNumber.Validate(); err != nil {
		return err
	}

	dto := BuyerReferenceDTO{
		BuyerID:     buyerID.Bytes(),
		OrderID:     ref.OrderID.Bytes(),
		OrderNumber: ref.OrderNumber.String(),
		CreatedAt:   r.now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Pending returns undelivered entries, oldest first. The read takes no row
// locks: two relays running at once may both deliver an entry, which the
// buyer directory has to tolerate.
func (r *GormBuyerReferenceOutbox) Pending(ctx context.Context, limit, maxAttempts int) ([]ports.PendingBuyerReference, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []BuyerReferenceDTO
	if err := r.db.WithContext(ctx).
		Where("delivered_at IS NULL AND attempts < ?", maxAttempts).
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	pending := make([]ports.PendingBuyerReference, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toPending(dto)
		if err != nil {
			return nil, err
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// MarkDelivered flags the entry as delivered.
func (r *GormBuyerReferenceOutbox) MarkDelivered(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&BuyerReferenceDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{"delivered_at": r.now().UTC(), "last_error": ""})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("buyer reference", strconv.FormatInt(id, 10))
	}
	return nil
}

// MarkFailed counts one more attempt and stores cause.
func (r *GormBuyerReferenceOutbox) MarkFailed(ctx context.Context, id int64, cause string) error {
	result := r.db.WithContext(ctx).Model(&BuyerReferenceDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{"attempts": gorm.Expr("attempts + 1"), "last_error": cause})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("buyer reference", strconv.FormatInt(id, 10))
	}
	return nil
}
