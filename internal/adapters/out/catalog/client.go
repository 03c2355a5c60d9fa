// Package catalog is the HTTP client of the product catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/httpclient"
)

const serviceName = "product catalog"

// priceResponse is the body of GET /products/{id}/price. Prices are in minor
// currency units.
type priceResponse struct {
	Price              *int64 `json:"price"`
	DiscountPercentage int64  `json:"discountPercentage"`
	IsActive           bool   `json:"isActive"`
}

// Client implements ports.ProductCatalog over HTTP. Reads are idempotent
// and retried with exponential backoff; a 404 is final.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	retry   httpclient.RetryConfig
}

// NewClient creates a catalog client for baseURL, e.g. http://catalog:8080.
func NewClient(baseURL string, httpClient *http.Client, retry httpclient.RetryConfig) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("catalog url", fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, http: httpClient, retry: retry}, nil
}

// GetPrice fetches the current price of productID.
//
// Returns:
//   - *errs.ObjectNotFoundError when the catalog answers 404
//   - ctx.Err() when the context ends first
//   - *errs.UpstreamError (ErrUpstreamUnavailable) after the retries are used up
func (c *Client) GetPrice(ctx context.Context, productID kernel.UUID) (ports.ProductPrice, error) {
	if err := productID.Validate(); err != nil {
		return ports.ProductPrice{}, err
	}

	endpoint := c.baseURL.JoinPath("products", productID.String(), "price").String()
	price, err := httpclient.Retry(ctx, c.retry, func(ctx context.Context) (ports.ProductPrice, error) {
		return c.fetchPrice(ctx, endpoint, productID)
	})
	if err == nil {
		return price, nil
	}

	if ctx.Err() != nil || errs.KindOf(err) != errs.KindInternal {
		return ports.ProductPrice{}, err
	}
	return ports.ProductPrice{}, errs.NewUpstreamUnavailableError(serviceName, err)
}

func (c *Client) fetchPrice(ctx context.Context, endpoint string, productID kernel.UUID) (ports.ProductPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ProductPrice{}, httpclient.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.ProductPrice{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.ProductPrice{}, httpclient.Permanent(errs.NewObjectNotFoundError("product", productID))
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return ports.ProductPrice{}, fmt.Errorf("catalog responded %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return ports.ProductPrice{}, httpclient.Permanent(
			errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("unexpected status %d", resp.StatusCode)))
	}

	var body priceResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return ports.ProductPrice{}, httpclient.Permanent(
			errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("decode price: %w", err)))
	}
	if body.Price == nil {
		return ports.ProductPrice{}, httpclient.Permanent(
			errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("price of product %s is missing", productID)))
	}

	return ports.ProductPrice{
		UnitPrice:       *body.Price,
		DiscountPercent: body.DiscountPercentage,
		Active:          body.IsActive,
	}, nil
}
