// Package pricing calls the Greenmile backend that prices a promoted
// product for the visitor's location. The widget is fail-silent, so callers
// treat every error here as "render nothing".
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type ProductInfoRequest struct {
	Shop         string   `json:"shop"`
	ProductID    string   `json:"product_id"`
	VariantID    string   `json:"variant_id"`
	ProductPrice float64  `json:"product_price"`
	Variant      string   `json:"variant"`
	Location     Location `json:"location"`
}

type ProductInfo struct {
	Price           Money    `json:"price"`
	DiscountedPrice Money    `json:"discounted_price"`
	UrgencyPrice    *Money   `json:"urgency_price,omitempty"`
	Images          []string `json:"images,omitempty"`
	InspectionNotes []string `json:"inspection_notes,omitempty"`
	ReturnedVariant string   `json:"returned_variant"`
	Err             string   `json:"error,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*ProductInfo]
	timeout time.Duration
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	cb := gobreaker.NewCircuitBreaker[*ProductInfo](gobreaker.Settings{
		Name:        "pricing-backend",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: cb,
		timeout: timeout,
		log:     log,
	}
}

// ProductInfo fetches price/condition data for one promoted variant. Calls
// go through a circuit breaker so a dead pricing backend cannot slow every
// widget render to its timeout.
func (c *Client) ProductInfo(ctx context.Context, req ProductInfoRequest) (*ProductInfo, error) {
	return c.breaker.Execute(func() (*ProductInfo, error) {
		return c.fetch(ctx, req)
	})
}

func (c *Client) fetch(ctx context.Context, req ProductInfoRequest) (*ProductInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal product-info request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/product-info", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build product-info request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("product-info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("product-info status %d: %s", resp.StatusCode, string(raw))
	}

	var info ProductInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode product-info failed: %w", err)
	}
	if info.Err != "" {
		return nil, fmt.Errorf("pricing backend error: %s", info.Err)
	}
	return &info, nil
}
