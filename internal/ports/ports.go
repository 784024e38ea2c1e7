// internal/ports/ports.go
package ports

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=ports

import (
	"context"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

// StoragePort is the durable key/value store the stores persist into.
// Get reports found=false for a missing key.
type StoragePort interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type IdentityPort interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
}

type OrderPort interface {
	CreateOrder(ctx context.Context, order *domain.OrderSubmission) (*domain.OrderReceipt, error)
}

type CatalogPort interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListRelatedProducts(ctx context.Context) ([]domain.Product, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id string) (*domain.Course, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

type AccountPort interface {
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListBookings(ctx context.Context, userID string) ([]domain.UserBooking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	ListEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error)
	CheckEnrollment(ctx context.Context, courseID, userID string) (bool, error)
	CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	EnrollInCourse(ctx context.Context, courseID string) error
	GetReferralStatus(ctx context.Context, userID, token string) (*domain.ReferralStatus, error)
}

type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

type OrderIDGenerator interface {
	NewOrderID() string
}
