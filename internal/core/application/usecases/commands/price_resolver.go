package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const maxParallelLookups = 8

// PriceResolver looks up the current catalog price of every requested product.
type PriceResolver interface {
	Resolve(ctx context.Context, items []services.RequestedItem) (map[kernel.UUID]services.CatalogPrice, error)
}

// CatalogPriceResolver fetches prices from the ProductCatalog in parallel.
// Each distinct product is looked up once; all lookups share one deadline.
type CatalogPriceResolver struct {
	catalog ports.ProductCatalog
	timeout time.Duration
}

// NewCatalogPriceResolver creates a resolver. A non-positive timeout means
// the caller's context is the only bound.
func NewCatalogPriceResolver(catalog ports.ProductCatalog, timeout time.Duration) CatalogPriceResolver {
	return CatalogPriceResolver{catalog: catalog, timeout: timeout}
}

// Resolve returns the catalog prices keyed by product.
//
// Returns:
//   - *errs.ObjectNotFoundError for unknown products
//   - *errs.ValueIsInvalidError for inactive products
//   - *errs.UpstreamError with ErrOrderCreationTimeout when the deadline passes
//   - *errs.UpstreamError with ErrUpstreamUnavailable when the catalog is down
func (r CatalogPriceResolver) Resolve(
	ctx context.Context,
	items []services.RequestedItem,
) (map[kernel.UUID]services.CatalogPrice, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var (
		mu     sync.Mutex
		prices = make(map[kernel.UUID]services.CatalogPrice, len(items))
		seen   = make(map[kernel.UUID]struct{}, len(items))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookups)

	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}

		productID := item.ProductID
		g.Go(func() error {
			price, err := r.catalog.GetPrice(gctx, productID)
			if err != nil {
				return err
			}
			if !price.Active {
				return errs.NewValueIsInvalidErrorWithCause(
					"product", fmt.Errorf("product %s is not available", productID))
			}

			mu.Lock()
			prices[productID] = services.CatalogPrice{
				UnitPrice:       price.UnitPrice,
				DiscountPercent: price.DiscountPercent,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.NewOrderCreationTimeoutError("product catalog", err)
		}
		return nil, err
	}

	return prices, nil
}
