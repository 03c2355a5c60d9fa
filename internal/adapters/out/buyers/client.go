// Package buyers is the HTTP client of the buyer directory, which keeps the
// order history of every buyer.
package buyers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

const serviceName = "buyer directory"

type orderReferenceRequest struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// Client implements ports.BuyerDirectory over HTTP. It makes exactly one
// attempt per call; redelivery is the relay job's business.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a directory client for baseURL, e.g. http://buyers:8080.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("buyer directory url", fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, http: httpClient}, nil
}

// AppendOrderReference posts ref to the buyer's order history.
//
// Returns:
//   - *errs.ObjectNotFoundError when the directory does not know the buyer
//   - *errs.UpstreamError (ErrUpstreamUnavailable) for any other failure
func (c *Client) AppendOrderReference(ctx context.Context, buyerID kernel.UUID, ref ports.OrderReference) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(orderReferenceRequest{
		OrderID:     ref.OrderID.String(),
		OrderNumber: ref.OrderNumber.String(),
	})
	if err != nil {
		return err
	}

	endpoint := c.baseURL.JoinPath("buyers", buyerID.String(), "orders").String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("buyer", buyerID)
	default:
		return errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
