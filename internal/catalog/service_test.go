package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/marqenbd/marqen-backend/pkg/config"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/storefront"
)

type stubUpstream struct {
	products  []storefront.Product
	product   *storefront.Product
	flashSale []storefront.Product
	err       error
	calls     map[string]int
	lastID    string
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{calls: make(map[string]int)}
}

func (s *stubUpstream) ListProducts(ctx context.Context) ([]storefront.Product, error) {
	s.calls["list"]++
	return s.products, s.err
}

func (s *stubUpstream) GetProduct(ctx context.Context, id string) (*storefront.Product, error) {
	s.calls["get"]++
	s.lastID = id
	return s.product, s.err
}

func (s *stubUpstream) FlashSaleProducts(ctx context.Context) ([]storefront.Product, error) {
	s.calls["flash"]++
	return s.flashSale, s.err
}

func (s *stubUpstream) Bestsellers(ctx context.Context) ([]storefront.Product, error) {
	s.calls["best"]++
	return s.products, s.err
}

type stubCache struct {
	values map[string]string
	getErr error
	setErr error
}

func newStubCache() *stubCache {
	return &stubCache{values: make(map[string]string)}
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	switch v := value.(type) {
	case []byte:
		s.values[key] = string(v)
	case string:
		s.values[key] = v
	}
	return nil
}

func (s *stubCache) CatalogCacheKey(parts ...string) string {
	key := "mq:catalog"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func newCatalogService(t *testing.T, upstream *stubUpstream, cache *stubCache) *service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	svc, err := NewService(config.CatalogConfig{CacheTTL: time.Minute}, upstream, cache, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func TestProductsDecoratesWithSlugPath(t *testing.T) {
	upstream := newStubUpstream()
	upstream.products = []storefront.Product{
		{ID: "507f1f77bcf86cd799439011", Name: "Premium Panjabi", Price: 1290},
	}
	svc := newCatalogService(t, upstream, newStubCache())

	views, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one product got %d", len(views))
	}
	if views[0].Slug != "premium-panjabi" {
		t.Fatalf("unexpected slug %q", views[0].Slug)
	}
	if views[0].Path != "/product/premium-panjabi-507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected path %q", views[0].Path)
	}
}

func TestProductsServedFromCacheOnSecondCall(t *testing.T) {
	upstream := newStubUpstream()
	upstream.products = []storefront.Product{{ID: "507f1f77bcf86cd799439011", Name: "Shirt", Price: 650}}
	cache := newStubCache()
	svc := newCatalogService(t, upstream, cache)

	if _, err := svc.Products(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Products(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if upstream.calls["list"] != 1 {
		t.Fatalf("expected one upstream fetch got %d", upstream.calls["list"])
	}
}

func TestProductsCacheFailureFallsThrough(t *testing.T) {
	upstream := newStubUpstream()
	upstream.products = []storefront.Product{{ID: "507f1f77bcf86cd799439011", Name: "Shirt", Price: 650}}
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := newCatalogService(t, upstream, cache)

	views, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("expected fallthrough got %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one product got %d", len(views))
	}
}

func TestProductsUndecodableCacheEntryRefetches(t *testing.T) {
	upstream := newStubUpstream()
	upstream.products = []storefront.Product{{ID: "507f1f77bcf86cd799439011", Name: "Shirt", Price: 650}}
	cache := newStubCache()
	cache.values[cache.CatalogCacheKey("products")] = "{not json"
	svc := newCatalogService(t, upstream, cache)

	views, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one product got %d", len(views))
	}
	if upstream.calls["list"] != 1 {
		t.Fatalf("expected upstream refetch got %d calls", upstream.calls["list"])
	}
}

func TestProductResolvesSlugID(t *testing.T) {
	upstream := newStubUpstream()
	upstream.product = &storefront.Product{ID: "507f1f77bcf86cd799439011", Name: "Premium Panjabi", Price: 1290}
	svc := newCatalogService(t, upstream, newStubCache())

	view, err := svc.Product(context.Background(), "premium-panjabi-507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if upstream.lastID != "507f1f77bcf86cd799439011" {
		t.Fatalf("expected extracted id got %q", upstream.lastID)
	}
	if view.Name != "Premium Panjabi" {
		t.Fatalf("unexpected product %+v", view)
	}
}

func TestProductMissingIsNotFound(t *testing.T) {
	upstream := newStubUpstream()
	upstream.product = &storefront.Product{}
	svc := newCatalogService(t, upstream, newStubCache())

	_, err := svc.Product(context.Background(), "507f1f77bcf86cd799439011")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestFlashSaleAppliesDiscountAndCountdown(t *testing.T) {
	end := time.Now().Add(26 * time.Hour)
	upstream := newStubUpstream()
	upstream.flashSale = []storefront.Product{
		{ID: "507f1f77bcf86cd799439011", Name: "Panjabi", Price: 1000, Discount: 15, FlashSaleEnd: &end},
	}
	svc := newCatalogService(t, upstream, newStubCache())

	views, err := svc.FlashSale(context.Background())
	if err != nil {
		t.Fatalf("flash sale: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one listing got %d", len(views))
	}
	if views[0].SalePrice != 850 {
		t.Fatalf("expected sale price 850 got %d", views[0].SalePrice)
	}
	if !views[0].Active {
		t.Fatal("expected active sale")
	}
	if views[0].Remaining.Days != 1 {
		t.Fatalf("expected 1 day remaining got %+v", views[0].Remaining)
	}
}

func TestFlashSaleExpiredWindow(t *testing.T) {
	end := time.Now().Add(-time.Hour)
	upstream := newStubUpstream()
	upstream.flashSale = []storefront.Product{
		{ID: "507f1f77bcf86cd799439011", Name: "Panjabi", Price: 1000, Discount: 15, FlashSaleEnd: &end},
	}
	svc := newCatalogService(t, upstream, newStubCache())

	views, err := svc.FlashSale(context.Background())
	if err != nil {
		t.Fatalf("flash sale: %v", err)
	}
	if views[0].Active {
		t.Fatal("expected inactive sale")
	}
	if views[0].Remaining.Days != 0 || views[0].Remaining.Seconds != 0 {
		t.Fatalf("expected zero countdown got %+v", views[0].Remaining)
	}
}

func TestUpstreamFailureIsDependencyError(t *testing.T) {
	upstream := newStubUpstream()
	upstream.err = errors.New("upstream down")
	svc := newCatalogService(t, upstream, newStubCache())

	_, err := svc.Products(context.Background())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error got %v", err)
	}
}

func TestCachePayloadRoundTrips(t *testing.T) {
	upstream := newStubUpstream()
	upstream.products = []storefront.Product{{ID: "507f1f77bcf86cd799439011", Name: "Shirt", Price: 650}}
	cache := newStubCache()
	svc := newCatalogService(t, upstream, cache)

	if _, err := svc.Products(context.Background()); err != nil {
		t.Fatalf("products: %v", err)
	}

	var cached []storefront.Product
	if err := json.Unmarshal([]byte(cache.values[cache.CatalogCacheKey("products")]), &cached); err != nil {
		t.Fatalf("cached payload not json: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected cached payload %+v", cached)
	}
}
