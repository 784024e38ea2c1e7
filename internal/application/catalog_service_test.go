// internal/application/catalog_service_test.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

var errCacheMiss = errors.New("cache miss")

func TestCatalogService_Products(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := ports.NewMockCatalogPort(ctrl)
	products := []domain.Product{facial, pedicure}
	cached, _ := json.Marshal(products)

	tests := []struct {
		name      string
		cache     *mockCache
		mockSetup func()
		wantErr   bool
		wantSet   bool
	}{
		{
			name: "Cache hit",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) {
					if key != "catalog:products" {
						t.Errorf("cache key = %q", key)
					}
					return cached, nil
				},
			},
			mockSetup: func() {},
		},
		{
			name: "Cache miss loads and stores",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return nil, errCacheMiss },
			},
			mockSetup: func() {
				mockCatalog.EXPECT().ListProducts(gomock.Any()).Return(products, nil)
			},
			wantSet: true,
		},
		{
			name: "Malformed cache entry is reloaded",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return []byte("{oops"), nil },
			},
			mockSetup: func() {
				mockCatalog.EXPECT().ListProducts(gomock.Any()).Return(products, nil)
			},
			wantSet: true,
		},
		{
			name: "Backend error is returned and not cached",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return nil, errCacheMiss },
			},
			mockSetup: func() {
				mockCatalog.EXPECT().ListProducts(gomock.Any()).Return(nil, domain.ErrNetwork)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCalled := false
			tt.cache.set = func(ctx context.Context, key string, value interface{}) error {
				setCalled = true
				return nil
			}
			tt.mockSetup()
			svc := NewCatalogService(mockCatalog, tt.cache, discardLogger())

			got, err := svc.Products(context.Background())

			if tt.wantErr {
				if !errors.Is(err, domain.ErrNetwork) {
					t.Errorf("Products() error = %v, want ErrNetwork", err)
				}
			} else if err != nil || len(got) != 2 || got[0].ID != "p1" {
				t.Errorf("Products() = %+v, %v", got, err)
			}
			if setCalled != tt.wantSet {
				t.Errorf("cache set called = %v, want %v", setCalled, tt.wantSet)
			}
		})
	}
}

func TestCatalogService_WithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := ports.NewMockCatalogPort(ctrl)
	mockCatalog.EXPECT().GetCourse(gomock.Any(), "c1").Return(&domain.Course{ID: "c1", Name: "Makeup"}, nil)
	mockCatalog.EXPECT().ListBanners(gomock.Any()).Return([]domain.Banner{{ID: "b1"}}, nil)

	svc := NewCatalogService(mockCatalog, nil, discardLogger())
	ctx := context.Background()

	course, err := svc.Course(ctx, "c1")
	if err != nil || course.Name != "Makeup" {
		t.Errorf("Course() = %+v, %v", course, err)
	}
	banners, err := svc.Banners(ctx)
	if err != nil || len(banners) != 1 {
		t.Errorf("Banners() = %+v, %v", banners, err)
	}
	if err := svc.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate() without cache = %v", err)
	}
}

func TestCatalogService_CacheWriteFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := ports.NewMockCatalogPort(ctrl)
	mockCatalog.EXPECT().ListPackages(gomock.Any()).Return([]domain.Package{{ID: "pkg"}}, nil)
	cache := &mockCache{
		get: func(ctx context.Context, key string) ([]byte, error) { return nil, errCacheMiss },
		set: func(ctx context.Context, key string, value interface{}) error { return errors.New("redis down") },
	}

	svc := NewCatalogService(mockCatalog, cache, discardLogger())
	packages, err := svc.Packages(context.Background())

	if err != nil || len(packages) != 1 {
		t.Errorf("Packages() = %+v, %v", packages, err)
	}
}

func TestCatalogService_Invalidate(t *testing.T) {
	var prefix string
	cache := &mockCache{
		delete: func(ctx context.Context, p string) error {
			prefix = p
			return nil
		},
	}
	svc := NewCatalogService(nil, cache, discardLogger())

	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if prefix != "catalog:" {
		t.Errorf("deleted prefix = %q, want catalog:", prefix)
	}
}

func TestCatalogService_AddToCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockCatalog := ports.NewMockCatalogPort(ctrl)
	mockCatalog.EXPECT().GetProduct(gomock.Any(), "p1").Return(&facial, nil)
	mockCatalog.EXPECT().GetProduct(gomock.Any(), "missing").Return(nil, domain.ErrNotFound)

	svc := NewCatalogService(mockCatalog, nil, discardLogger())
	cart := NewCartStore(ctx, newMemStorage(), discardLogger())

	if _, err := svc.AddToCart(ctx, cart, "p1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if _, err := svc.AddToCart(ctx, cart, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("AddToCart(missing) error = %v, want ErrNotFound", err)
	}
	if cart.Count() != 1 || cart.Items()[0].Title != "Gold Facial" {
		t.Errorf("cart = %+v", cart.Items())
	}
}

func TestCatalogService_AddToCartRejectsProductWithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockCatalog := ports.NewMockCatalogPort(ctrl)
	mockCatalog.EXPECT().GetProduct(gomock.Any(), "ghost").Return(&domain.Product{Name: "Ghost Facial", Price: 300}, nil)

	svc := NewCatalogService(mockCatalog, nil, discardLogger())
	cart := NewCartStore(ctx, newMemStorage(), discardLogger())

	product, err := svc.AddToCart(ctx, cart, "ghost")

	if !errors.Is(err, ErrProductWithoutID) || product != nil {
		t.Errorf("AddToCart() = %+v, %v, want ErrProductWithoutID", product, err)
	}
	if !cart.IsEmpty() {
		t.Errorf("cart = %+v, want empty", cart.Items())
	}
}
