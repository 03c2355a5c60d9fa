// Package commands holds the write side of the order service: placing an
// order, patching it through the status machine and relaying buyer
// references. Each handler validates its command, opens a unit of work and
// commits once.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

type (
	// TxManager is the transaction half of an order unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OutboxFactory interface {
		BuyerReferenceOutbox() ports.BuyerReferenceOutbox
	}

	// OrderUoW is what the create and update handlers need. A new order and
	// its buyer reference entry land in one commit:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil { ... }
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	_ = uow.OrderRepository().Add(ctx, o)
	//	_ = uow.BuyerReferenceOutbox().Enqueue(ctx, o.BuyerID(), ref)
	//	return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
