// Package sequence allocates order number sequence values from a Postgres
// sequence.
package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultName is the sequence backing order numbers.
const DefaultName = "order_number_seq"

// GormSequenceAllocator implements ports.SequenceAllocator with nextval().
// nextval is atomic across sessions and never rolls back, so concurrent
// callers never see the same value and aborted transactions leave gaps.
type GormSequenceAllocator struct {
	db   *gorm.DB
	name string
}

// NewGormSequenceAllocator creates an allocator for the sequence name.
func NewGormSequenceAllocator(db *gorm.DB, name string) *GormSequenceAllocator {
	if name == "" {
		name = DefaultName
	}
	return &GormSequenceAllocator{db: db, name: name}
}

// EnsureSequence creates the sequence if it does not exist yet. It is run
// at startup next to AutoMigrate.
func (a *GormSequenceAllocator) EnsureSequence(ctx context.Context) error {
	return a.db.WithContext(ctx).
		Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START WITH 1 INCREMENT BY 1", quoteIdent(a.name))).
		Error
}

// Next returns the next sequence value.
func (a *GormSequenceAllocator) Next(ctx context.Context) (int64, error) {
	var value int64
	if err := a.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", a.name).Scan(&value).Error; err != nil {
		return 0, fmt.Errorf("nextval %s: %w", a.name, err)
	}
	return value, nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
