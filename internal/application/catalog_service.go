// internal/application/catalog_service.go
package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

const catalogCachePrefix = "catalog:"

// CatalogService reads the catalog, going through the cache when one is
// configured. Cache failures never fail a read.
type CatalogService struct {
	catalog ports.CatalogPort
	cache   ports.CachePort
	logger  *slog.Logger
}

func NewCatalogService(catalog ports.CatalogPort, cache ports.CachePort, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, cache: cache, logger: logger}
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"products", s.catalog.ListProducts)
}

func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"product:"+id, func(ctx context.Context) (*domain.Product, error) {
		return s.catalog.GetProduct(ctx, id)
	})
}

func (s *CatalogService) RelatedProducts(ctx context.Context) ([]domain.Product, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"products:related", s.catalog.ListRelatedProducts)
}

func (s *CatalogService) Courses(ctx context.Context) ([]domain.Course, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"courses", s.catalog.ListCourses)
}

func (s *CatalogService) Course(ctx context.Context, id string) (*domain.Course, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"course:"+id, func(ctx context.Context) (*domain.Course, error) {
		return s.catalog.GetCourse(ctx, id)
	})
}

func (s *CatalogService) Packages(ctx context.Context) ([]domain.Package, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"packages", s.catalog.ListPackages)
}

func (s *CatalogService) Banners(ctx context.Context) ([]domain.Banner, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"banners", s.catalog.ListBanners)
}

// AddToCart fetches the product and adds one unit of it to the cart.
// A product the backend returns without an id is rejected.
func (s *CatalogService) AddToCart(ctx context.Context, cart *CartStore, productID string) (*domain.Product, error) {
	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ID == "" {
		return nil, ErrProductWithoutID
	}
	cart.AddItem(ctx, *product)
	return product, nil
}

func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPrefix(ctx, catalogCachePrefix)
}

func cachedRead[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				return v, nil
			}
			s.logger.Warn("discarding malformed cache entry", slog.String("key", key))
		}
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, v); err != nil {
			s.logger.Warn("failed to cache catalog read",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	return v, nil
}
