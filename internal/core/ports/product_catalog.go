package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// ProductPrice is the catalog's current price data of one product.
type ProductPrice struct {
	UnitPrice       int64
	DiscountPercent int64
	Active          bool
}

// ProductCatalog is the authoritative source of product prices.
type ProductCatalog interface {
	// GetPrice fetches the current price of productID.
	//
	// Returns:
	//   - *errs.ObjectNotFoundError when the catalog does not know the product
	//   - *errs.UpstreamError when the catalog can not be reached
	GetPrice(ctx context.Context, productID kernel.UUID) (ProductPrice, error)
}
