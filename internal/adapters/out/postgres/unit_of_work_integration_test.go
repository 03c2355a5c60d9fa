package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &outboxrepo.BuyerReferenceDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_line_items, buyer_order_references").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWritesOrderAndOutboxTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite, 1)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.BuyerReferenceOutbox().Enqueue(ctx, o.BuyerID(), referenceOf(o)))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(loaded.ID()))

	pending, err := suite.factory.Create().BuyerReferenceOutbox().Pending(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(o.Number(), pending[0].Reference.OrderNumber)
	suite.True(o.BuyerID().IsEqual(pending[0].BuyerID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsOrderAndOutbox() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite, 2)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.BuyerReferenceOutbox().Enqueue(ctx, o.BuyerID(), referenceOf(o)))

	_, err := uow.OrderRepository().GetByNumber(ctx, o.Number())
	suite.Require().NoError(err, "order should be visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().GetByNumber(ctx, o.Number())
	suite.Require().Error(err, "Order should not exist after rollback")

	pending, err := suite.factory.Create().BuyerReferenceOutbox().Pending(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder(suite, 3)
	order2 := createTestOrder(suite, 4)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().GetByNumber(ctx, order2.Number())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().GetByNumber(ctx, order1.Number())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().GetByNumber(ctx, order1.Number())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = newUow.OrderRepository().GetByNumber(ctx, order2.Number())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UpdateInTransactionAdvancesVersion() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite, 5)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.TransitionTo(order.Confirmed, time.Now()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Equal(int64(2), loaded.Version())
	suite.Equal(int64(2), o.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	o := createTestOrder(suite, 6)

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite, seq int64) *order.Order {
	now := time.Now().UTC()
	number, err := order.NewOrderNumber(now, seq)
	suite.Require().NoError(err)
	address, err := order.NewAddress("7 Harbour Road", "Portland", "OR", "US", "97201")
	suite.Require().NoError(err)
	payment, err := order.NewPendingPayment(order.COD)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), 3, 400, 0)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(1200, 0, 0, 0, 1200)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), address, address, payment,
		[]order.LineItem{item}, pricing, now)
	suite.Require().NoError(err)
	return o
}

func referenceOf(o *order.Order) ports.OrderReference {
	return ports.OrderReference{OrderID: o.ID(), OrderNumber: o.Number()}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
