package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command. Instances are
// not shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes one order write. Begin is idempotent on an open
// transaction. Commit and Rollback both close it, so a deferred Rollback
// after a successful Commit returns an error the caller may ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository reads and writes orders inside the open transaction,
	// or on the plain connection when Begin has not been called.
	OrderRepository() OrderRepository

	// BuyerReferenceOutbox enqueues buyer references in the same transaction
	// as the order that produced them.
	BuyerReferenceOutbox() BuyerReferenceOutbox
}
