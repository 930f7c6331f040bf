package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/metrics"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

// Product is the upstream catalog representation. The catalog discount
// (mainPrice -> price) is applied upstream; this service only displays the
// delta.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	MainPrice   int64    `json:"mainPrice"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	// Discount is the flash-sale percentage, set only on flash-sale
	// listings.
	Discount int64 `json:"discount,omitempty"`
	// FlashSaleEnd drives the cosmetic countdown; nothing server-side
	// enforces it.
	FlashSaleEnd *time.Time `json:"flashSaleEndTime,omitempty"`
}

// Client talks to the merchant backend REST API that owns product, order,
// and auth persistence. Calls go through a circuit breaker; there is no
// retry policy anywhere in this service.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.StorefrontMetrics
}

// New builds the upstream client from configuration.
func New(cfg config.UpstreamConfig, m *metrics.StorefrontMetrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.BreakerName,
		Timeout: cfg.BreakerCooloff,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFail
		},
	})

	return &Client{http: http, breaker: breaker, metrics: m}, nil
}

// CreateOrder posts an order payload to the upstream Order API. The
// response body is not interpreted beyond the status code; the caller
// decides what a failure means for its flow.
func (c *Client) CreateOrder(ctx context.Context, payload types.OrderPayload) error {
	_, err := c.execute(ctx, "create_order", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetBody(payload).
			Post("/orders")
	})
	return err
}

// ListProducts fetches the full catalog listing.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	return c.fetchProducts(ctx, "list_products", "/products")
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	_, err := c.execute(ctx, "get_product", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetResult(&product).
			Get("/products/" + id)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FlashSaleProducts fetches the discounted flash-sale listings.
func (c *Client) FlashSaleProducts(ctx context.Context) ([]Product, error) {
	return c.fetchProducts(ctx, "flash_sale", "/products/flash-sale")
}

// Bestsellers fetches the bestseller listings.
func (c *Client) Bestsellers(ctx context.Context) ([]Product, error) {
	return c.fetchProducts(ctx, "bestsellers", "/products/bestsellers")
}

// OrderStats fetches the dashboard order counters.
func (c *Client) OrderStats(ctx context.Context) (*types.OrderStats, error) {
	var stats types.OrderStats
	_, err := c.execute(ctx, "order_stats", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetResult(&stats).
			Get("/orders/total-items")
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) fetchProducts(ctx context.Context, endpoint, path string) ([]Product, error) {
	var products []Product
	_, err := c.execute(ctx, endpoint, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetResult(&products).
			Get(path)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) execute(ctx context.Context, endpoint string, call func() (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := call()
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("upstream %s: status %d", endpoint, resp.StatusCode())
		}
		return resp, nil
	})
	c.metrics.ObserveUpstream(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncUpstreamFailure(endpoint)
		return nil, err
	}
	return result.(*resty.Response), nil
}
