package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marqenbd/marqen-backend/internal/pricing"
	"github.com/marqenbd/marqen-backend/pkg/config"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/redis"
	"github.com/marqenbd/marqen-backend/pkg/slug"
	"github.com/marqenbd/marqen-backend/pkg/storefront"
)

type upstreamCatalog interface {
	ListProducts(ctx context.Context) ([]storefront.Product, error)
	GetProduct(ctx context.Context, id string) (*storefront.Product, error)
	FlashSaleProducts(ctx context.Context) ([]storefront.Product, error)
	Bestsellers(ctx context.Context) ([]storefront.Product, error)
}

type listCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogCacheKey(parts ...string) string
}

// ProductView is a catalog product decorated with its storefront URL path.
type ProductView struct {
	storefront.Product
	Slug string `json:"slug"`
	Path string `json:"path"`
}

// FlashSaleView adds the sale arithmetic to a flash-sale listing. SalePrice
// applies the per-product percent discount; the countdown is cosmetic.
type FlashSaleView struct {
	ProductView
	SalePrice int64             `json:"salePrice"`
	Active    bool              `json:"active"`
	Remaining pricing.Remaining `json:"remaining"`
}

// Service serves the storefront read paths, proxying the upstream catalog
// with a short cache on list endpoints. Cache failures degrade to an
// upstream fetch, never to an error.
type Service interface {
	Products(ctx context.Context) ([]ProductView, error)
	Product(ctx context.Context, slugID string) (*ProductView, error)
	FlashSale(ctx context.Context) ([]FlashSaleView, error)
	Bestsellers(ctx context.Context) ([]ProductView, error)
}

type service struct {
	upstream upstreamCatalog
	cache    listCache
	cacheTTL time.Duration
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the catalog proxy.
func NewService(cfg config.CatalogConfig, upstream upstreamCatalog, cache listCache, logg *logger.Logger) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream client required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{
		upstream: upstream,
		cache:    cache,
		cacheTTL: ttl,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Products(ctx context.Context) ([]ProductView, error) {
	products, err := s.cachedList(ctx, "products", s.upstream.ListProducts)
	if err != nil {
		return nil, err
	}
	return decorate(products), nil
}

func (s *service) Product(ctx context.Context, slugID string) (*ProductView, error) {
	if slugID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.upstream.GetProduct(ctx, slug.ExtractID(slugID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching product")
	}
	if product == nil || product.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	view := decorateOne(*product)
	return &view, nil
}

func (s *service) FlashSale(ctx context.Context) ([]FlashSaleView, error) {
	products, err := s.cachedList(ctx, "flash_sale", s.upstream.FlashSaleProducts)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]FlashSaleView, len(products))
	for i, product := range products {
		view := FlashSaleView{
			ProductView: decorateOne(product),
			SalePrice:   pricing.DiscountedPrice(product.Price, product.Discount),
		}
		if product.FlashSaleEnd != nil {
			view.Active = now.Before(*product.FlashSaleEnd)
			view.Remaining = pricing.RemainingTime(*product.FlashSaleEnd, now)
		}
		views[i] = view
	}
	return views, nil
}

func (s *service) Bestsellers(ctx context.Context) ([]ProductView, error) {
	products, err := s.cachedList(ctx, "bestsellers", s.upstream.Bestsellers)
	if err != nil {
		return nil, err
	}
	return decorate(products), nil
}

func (s *service) cachedList(ctx context.Context, name string, fetch func(context.Context) ([]storefront.Product, error)) ([]storefront.Product, error) {
	key := s.cache.CatalogCacheKey(name)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var products []storefront.Product
		if jsonErr := json.Unmarshal([]byte(cached), &products); jsonErr == nil {
			return products, nil
		}
		s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "discarding undecodable catalog cache entry")
	} else if !redis.IsNil(err) {
		s.logg.Error(s.logg.WithField(ctx, "cache_key", key), "catalog cache read failed", err)
	}

	products, err := fetch(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching "+name)
	}

	if payload, jsonErr := json.Marshal(products); jsonErr == nil {
		if setErr := s.cache.Set(ctx, key, payload, s.cacheTTL); setErr != nil {
			s.logg.Error(s.logg.WithField(ctx, "cache_key", key), "catalog cache write failed", setErr)
		}
	}
	return products, nil
}

func decorate(products []storefront.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, product := range products {
		views[i] = decorateOne(product)
	}
	return views
}

func decorateOne(product storefront.Product) ProductView {
	return ProductView{
		Product: product,
		Slug:    slug.Generate(product.Name),
		Path:    slug.ProductPath(product.ID, product.Name),
	}
}
