// internal/adapters/sandbox/order_service.go
package sandbox

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

const (
	bookingPending   = "pending"
	bookingConfirmed = "confirmed"
	bookingCancelled = "cancelled"
)

var (
	errOrderMissingFields = errors.New("missing required fields")
	errOrderUnknownUser   = errors.New("unknown user")
	errInvalidPhone       = errors.New("invalid phone number")
	errInvalidService     = errors.New("invalid service type")
	errBookingNotFound    = errors.New("booking not found")
	errBookingNotPending  = errors.New("booking can no longer be cancelled")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 -]{8,15}$`)

type OrderService struct {
	store *memoryStore
	now   func() time.Time
}

func NewOrderService(store *memoryStore) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

func (s *OrderService) CreateOrder(req *domain.OrderSubmission) (*domain.Order, error) {
	if req.UserID == "" || req.OrderID == "" || len(req.Products) == 0 || req.Booking.Date == "" || req.Booking.TimeSlot == "" {
		return nil, errOrderMissingFields
	}
	if !req.Booking.ServiceType.Valid() {
		return nil, errInvalidService
	}
	if !s.store.UserExists(req.UserID) {
		return nil, errOrderUnknownUser
	}
	if req.Booking.ServiceType == domain.ServiceHome {
		a := req.Address
		if a.FullName == "" || a.Street == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Phone == "" {
			return nil, errOrderMissingFields
		}
		if !phonePattern.MatchString(strings.TrimSpace(a.Phone)) {
			return nil, errInvalidPhone
		}
	}

	now := s.now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		OrderID:     req.OrderID,
		UserID:      req.UserID,
		Products:    append([]domain.OrderLine(nil), req.Products...),
		Address:     req.Address,
		Booking:     req.Booking,
		PaymentType: req.PaymentType,
		Amounts:     req.Amounts,
		Status:      bookingPending,
		CreatedAt:   now.Format(time.RFC3339),
	}
	booking := &domain.UserBooking{
		ID:        uuid.NewString(),
		OrderID:   order.OrderID,
		Booking:   order.Booking,
		Products:  order.Products,
		Status:    bookingPending,
		CreatedAt: order.CreatedAt,
	}
	s.store.CreateOrder(order, booking)
	return &order, nil
}

func (s *OrderService) ListOrders(userID string) []domain.Order {
	return s.store.ListOrders(userID)
}

func (s *OrderService) ListBookings(userID string) []domain.UserBooking {
	return s.store.ListBookings(userID)
}

func (s *OrderService) CancelBooking(bookingID string) error {
	found, ok := s.store.CancelBooking(bookingID)
	if !found {
		return errBookingNotFound
	}
	if !ok {
		return errBookingNotPending
	}
	return nil
}
