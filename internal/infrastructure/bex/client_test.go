package bex_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/infrastructure/bex"
	"github.com/herbie65/Tesland2026-sub004/pkg/config"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

func newClient(baseURL string, maxRetries int) *bex.Client {
	return bex.NewClient(config.BexConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	}, logger.Nop())
}

func TestClient_PlaceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"reference":"BEX-90012","eta":"2026-09-04"}`))
	}))
	defer srv.Close()

	placed, err := newClient(srv.URL, 0).PlaceOrder(context.Background(), "1044532-00-B", 4)
	require.NoError(t, err)
	assert.Equal(t, "BEX-90012", placed.Reference)
	require.NotNil(t, placed.ETA)
	assert.Equal(t, "2026-09-04", placed.ETA.Format("2006-01-02"))
}

func TestClient_PlaceOrderMissingReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 0).PlaceOrder(context.Background(), "1044532-00-B", 4)
	assert.ErrorIs(t, err, domain.ErrSupplierUnavailable)
}

// 5xx answers are retried up to the configured bound; a later success wins.
func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"shipped","received_qty":0,"eta":""}`))
	}))
	defer srv.Close()

	status, err := newClient(srv.URL, 2).GetOrderStatus(context.Background(), "BEX-1")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "shipped", status.Status)
	assert.Nil(t, status.ETA)
}

func TestClient_ExhaustedRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 1).GetOrderStatus(context.Background(), "BEX-1")
	assert.ErrorIs(t, err, domain.ErrSupplierUnavailable)
	assert.Equal(t, 2, calls)
}

// Client errors are final: no retry, no supplier-unavailable wrapping.
func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 3).GetOrderStatus(context.Background(), "BEX-404")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSupplierUnavailable)
	assert.Equal(t, 1, calls)
}
