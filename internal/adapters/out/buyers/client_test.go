package buyers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orders/internal/adapters/out/buyers"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *buyers.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := buyers.NewClient(ts.URL, httpclient.NewClient(time.Second, nil))
	require.NoError(t, err)
	return client
}

func TestClient_AppendOrderReference(t *testing.T) {
	buyerID := kernel.NewUUID()
	ref := ports.OrderReference{OrderID: kernel.NewUUID(), OrderNumber: "ORD-2410-000042"}

	t.Run("should post the reference", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/buyers/"+buyerID.String()+"/orders", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{
				"orderId":     ref.OrderID.String(),
				"orderNumber": "ORD-2410-000042",
			}, body)
			w.WriteHeader(http.StatusCreated)
		})

		require.NoError(t, client.AppendOrderReference(context.Background(), buyerID, ref))
	})

	t.Run("should map 404 to not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.AppendOrderReference(context.Background(), buyerID, ref)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("should map server errors to upstream unavailable", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.AppendOrderReference(context.Background(), buyerID, ref)

		assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("should map transport errors to upstream unavailable", func(t *testing.T) {
		client, err := buyers.NewClient("http://127.0.0.1:1", httpclient.NewClient(time.Second, nil))
		require.NoError(t, err)

		err = client.AppendOrderReference(context.Background(), buyerID, ref)

		assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	})
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := buyers.NewClient("buyers", nil)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
