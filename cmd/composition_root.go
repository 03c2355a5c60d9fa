package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/buyers"
	"orders/internal/adapters/out/catalog"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	pgsequence "orders/internal/adapters/out/postgres/sequence"
	redissequence "orders/internal/adapters/out/redis/sequence"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/jobs"
	"orders/internal/pkg/httpclient"
	"orders/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	engine    services.PricingEngine
	sequence  ports.SequenceAllocator
	catalog   *catalog.Client
	directory *buyers.Client

	closers []func() error
}

// NewCompositionRoot builds the shared dependencies. The order number
// sequence is prepared here so that a misconfigured backend fails at startup.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, log *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     log,
	}

	engine, err := services.NewPricingEngine(configs.Pricing.TaxPercent, configs.Pricing.ShippingCost)
	if err != nil {
		return nil, fmt.Errorf("pricing engine: %w", err)
	}
	c.engine = engine

	if c.sequence, err = c.createSequenceAllocator(ctx); err != nil {
		return nil, err
	}

	retry := httpclient.DefaultRetryConfig()
	retry.MaxAttempts = configs.Catalog.MaxRetries
	c.catalog, err = catalog.NewClient(
		configs.Catalog.URL,
		httpclient.NewClient(configs.Catalog.RequestTimeout, logger.ForComponent(log, "catalog_client")),
		retry,
	)
	if err != nil {
		return nil, err
	}

	c.directory, err = buyers.NewClient(
		configs.BuyerDirectory.URL,
		httpclient.NewClient(configs.BuyerDirectory.RequestTimeout, logger.ForComponent(log, "buyer_directory_client")),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) createSequenceAllocator(ctx context.Context) (ports.SequenceAllocator, error) {
	switch c.configs.Sequence.Backend {
	case SequenceBackendRedis:
		allocator, err := redissequence.NewRedisSequenceAllocator(c.configs.Sequence.RedisURL, redissequence.DefaultKey)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, allocator.Close)
		if err = allocator.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis sequence: %w", err)
		}
		return allocator, nil
	default:
		allocator := pgsequence.NewGormSequenceAllocator(c.gormDB, pgsequence.DefaultName)
		if err := allocator.EnsureSequence(ctx); err != nil {
			return nil, fmt.Errorf("postgres sequence: %w", err)
		}
		return allocator, nil
	}
}

// Close releases resources owned by the composition root.
func (c *CompositionRoot) Close() error {
	var err error
	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn())
	}
	return err
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) priceResolver() commands.CatalogPriceResolver {
	return commands.NewCatalogPriceResolver(c.catalog, c.configs.Catalog.LookupTimeout)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	handler := commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		commands.NewOrderNumberGenerator(c.sequence, time.Now),
		c.priceResolver(),
		c.engine,
		c.configs.Sequence.MaxAttempts,
		c.configs.Database.StoreTimeout,
		logger.ForComponent(c.logger, "create_order"),
	)
	return &handler
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	handler := commands.NewUpdateOrderCommandHandler(
		c.orderUoWFactory(),
		c.priceResolver(),
		c.engine,
		c.configs.Database.StoreTimeout,
		logger.ForComponent(c.logger, "update_order"),
	)
	return &handler
}

func (c *CompositionRoot) CreateRelayBuyerReferencesCommandHandler() *commands.RelayBuyerReferencesCommandHandler {
	handler := commands.NewRelayBuyerReferencesCommandHandler(
		outboxrepo.NewGormBuyerReferenceOutbox(c.gormDB),
		c.directory,
		c.configs.BuyerDirectory.RelayMaxAttempts,
		logger.ForComponent(c.logger, "buyer_reference_relay"),
	)
	return &handler
}

func (c *CompositionRoot) orderReader() queries.OrderReader {
	return orderrepo.NewGormOrderRepository(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader(), time.Now)
}

func (c *CompositionRoot) CreateListOrdersByStatusQueryHandler() queries.ListOrdersByStatusQueryHandler {
	return queries.NewListOrdersByStatusQueryHandler(c.orderReader(), time.Now)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader(), time.Now)
}

func (c *CompositionRoot) CreateHTTPServer() *orderhttp.Server {
	return orderhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersByStatusQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		logger.ForComponent(c.logger, "http"),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewBuyerReferenceRelayJob(
		c.CreateRelayBuyerReferencesCommandHandler(),
		c.configs.BuyerDirectory.RelayInterval,
		c.configs.BuyerDirectory.RelayBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
