// Package bex implements the outbound client for the BeX supplier ordering
// API (JSON over HTTP). It satisfies the workshop.SupplierGateway port; the
// state machines never import this package directly.
package bex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/pkg/config"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

var _ workshop.SupplierGateway = (*Client)(nil)

// Client talks to the BeX API. Every call is bounded by the configured
// timeout and retried a bounded number of times on transport errors and 5xx
// responses. A timeout never assumes success: the caller's back-order state
// is only advanced on a parsed 2xx answer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	log        *logger.Logger
}

// NewClient builds the BeX client from configuration.
func NewClient(cfg config.BexConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
}

type placeOrderRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type placeOrderResponse struct {
	Reference string `json:"reference"`
	ETA       string `json:"eta"` // RFC 3339 date, may be empty
}

type orderStatusResponse struct {
	Status      string `json:"status"`
	ReceivedQty int    `json:"received_qty"`
	ETA         string `json:"eta"`
}

// PlaceOrder places a supplier order for qty of sku and returns the
// server-supplied reference and ETA.
func (c *Client) PlaceOrder(ctx context.Context, sku string, qty int) (*workshop.PlacedOrder, error) {
	body, err := json.Marshal(placeOrderRequest{SKU: sku, Quantity: qty})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	respBody, err := c.do(ctx, http.MethodPost, "/v1/orders", body)
	if err != nil {
		return nil, err
	}
	var resp placeOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if resp.Reference == "" {
		return nil, fmt.Errorf("bex returned no order reference: %w", domain.ErrSupplierUnavailable)
	}
	return &workshop.PlacedOrder{
		Reference: resp.Reference,
		ETA:       parseETA(resp.ETA),
	}, nil
}

// GetOrderStatus fetches the current remote state of an order.
func (c *Client) GetOrderStatus(ctx context.Context, reference string) (*workshop.RemoteOrderStatus, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/v1/orders/"+reference, nil)
	if err != nil {
		return nil, err
	}
	var resp orderStatusResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &workshop.RemoteOrderStatus{
		Status:      resp.Status,
		ReceivedQty: resp.ReceivedQty,
		ETA:         parseETA(resp.ETA),
	}, nil
}

// do performs one HTTP call with bounded retries. Retries apply to transport
// errors and 5xx answers; 4xx answers are final.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error
	attempts := c.maxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		respBody, retryable, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			return respBody, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt+1).
			Err(err).
			Msg("bex call failed, will retry")
	}
	return nil, fmt.Errorf("bex %s %s after %d attempts: %w: %w", method, path, attempts, domain.ErrSupplierUnavailable, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte) (respBody []byte, retryable bool, err error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport error or timeout: retryable unless the context is gone.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("bex responded %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("bex responded %d: %s", resp.StatusCode, string(data))
	}
}

func parseETA(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
