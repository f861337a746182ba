// Package medusa is an HTTP client for the commerce backend's store API.
// It implements the ports the checkout flow, guard and cart repair consume.
package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

var ErrNotFound = errors.New("not found")

// StatusError is any non-2xx response that is not a plain 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store api status %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeout,
		log:     log,
	}
}

func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var out struct {
		Regions []domain.Region `json:"regions"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/regions", nil, &out); err != nil {
		return nil, err
	}
	return out.Regions, nil
}

func (c *Client) CreateCart(ctx context.Context, regionID string) (*domain.Cart, error) {
	body := map[string]string{"region_id": regionID}
	var out struct {
		Cart *domain.Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, "/store/carts", body, &out); err != nil {
		return nil, err
	}
	if out.Cart == nil || out.Cart.ID == "" {
		return nil, errors.New("store api returned cart without id")
	}
	return out.Cart, nil
}

func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*domain.LineItem, error) {
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	path := fmt.Sprintf("/store/carts/%s/line-items", cartID)
	var out struct {
		Cart *domain.Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	item := &domain.LineItem{CartID: cartID, VariantID: variantID, Quantity: quantity}
	if out.Cart != nil {
		for _, li := range out.Cart.Items {
			if li.Variant != nil && li.Variant.ID == variantID {
				item.ID = li.ID
			}
		}
	}
	return item, nil
}

func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var out struct {
		Cart *domain.Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+cartID, nil, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *Client) DeleteLineItem(ctx context.Context, cartID, itemID string) error {
	path := fmt.Sprintf("/store/carts/%s/line-items/%s", cartID, itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) GetVariant(ctx context.Context, variantID string) (*domain.Variant, error) {
	var out struct {
		Variant *domain.Variant `json:"variant"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/variants/"+variantID, nil, &out); err != nil {
		return nil, err
	}
	return out.Variant, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}
