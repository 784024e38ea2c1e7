// internal/application/checkout.go
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

type CheckoutState int

const (
	StateCollecting CheckoutState = iota
	StateSubmitting
	StateConfirmed
)

func (s CheckoutState) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

const (
	PaymentCashOnDelivery      = "cod"
	PaymentCashOnDeliveryLabel = "Cash on Delivery"
)

// DefaultTimeSlots are the bookable hours; 01:00 PM is lunch.
var DefaultTimeSlots = []string{
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 01:00 PM",
	"02:00 PM - 03:00 PM",
	"03:00 PM - 04:00 PM",
	"04:00 PM - 05:00 PM",
	"05:00 PM - 06:00 PM",
}

const isoMillis = "2006-01-02T15:04:05.000Z"

type Confirmation struct {
	OrderID        string
	BackendOrderID string
	ServiceType    domain.ServiceType
	Date           time.Time
	TimeSlot       string
	Amounts        domain.Amounts
}

// DisplayOrderID is the generated ORD- id, or the backend id when no
// id was generated.
func (c Confirmation) DisplayOrderID() string {
	if c.OrderID != "" {
		return c.OrderID
	}
	return c.BackendOrderID
}

// RandomOrderIDs issues ORD- followed by six random digits.
type RandomOrderIDs struct{}

func (RandomOrderIDs) NewOrderID() string {
	return fmt.Sprintf("ORD-%d", 100000+rand.IntN(900000))
}

// Checkout turns the cart and the collected logistics into one order.
type Checkout struct {
	mu            sync.Mutex
	state         CheckoutState
	serviceType   domain.ServiceType
	date          time.Time
	timeSlot      string
	address       domain.Address
	paymentMethod string
	confirmation  *Confirmation
	lastErr       error

	cart    *CartStore
	session *AuthSession
	orders  ports.OrderPort
	ids     ports.OrderIDGenerator
	pricing Pricing
	logger  *slog.Logger
}

func NewCheckout(cart *CartStore, session *AuthSession, orders ports.OrderPort, ids ports.OrderIDGenerator, pricing Pricing, logger *slog.Logger) *Checkout {
	c := &Checkout{
		state:         StateCollecting,
		serviceType:   domain.ServiceHome,
		paymentMethod: PaymentCashOnDelivery,
		cart:          cart,
		session:       session,
		orders:        orders,
		ids:           ids,
		pricing:       pricing,
		logger:        logger,
	}
	if user := session.User(); user != nil {
		c.address.FullName = user.FullName()
		c.address.Phone = user.Phone
	}
	return c
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Checkout) Confirmation() (Confirmation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmation == nil {
		return Confirmation{}, false
	}
	return *c.confirmation, true
}

func (c *Checkout) Address() domain.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

func (c *Checkout) ServiceType() domain.ServiceType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serviceType
}

func (c *Checkout) SetServiceType(service domain.ServiceType) error {
	if !service.Valid() {
		return newValidationError(ReasonInvalidServiceType, ErrMsgInvalidServiceType, "serviceType")
	}
	return c.edit(func() { c.serviceType = service })
}

func (c *Checkout) SetSchedule(date time.Time, timeSlot string) error {
	return c.edit(func() {
		c.date = date
		c.timeSlot = strings.TrimSpace(timeSlot)
	})
}

func (c *Checkout) SetAddress(address domain.Address) error {
	return c.edit(func() { c.address = address })
}

func (c *Checkout) SetPaymentMethod(method string) error {
	return c.edit(func() { c.paymentMethod = strings.TrimSpace(method) })
}

func (c *Checkout) edit(apply func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateConfirmed:
		return ErrAlreadyConfirmed
	}
	apply()
	return nil
}

// Summary prices the current cart for the selected service type.
func (c *Checkout) Summary() domain.Amounts {
	items := c.cart.Items()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pricing.Checkout(items, c.serviceType)
}

// Validate reports the first problem that blocks submission.
func (c *Checkout) Validate() error {
	cart := c.cart.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked(cart)
}

func (c *Checkout) validateLocked(cart domain.Cart) error {
	if len(cart.Items) == 0 {
		return newValidationError(ReasonCartEmpty, ErrMsgCartEmpty)
	}
	if c.date.IsZero() || c.timeSlot == "" {
		var fields []string
		if c.date.IsZero() {
			fields = append(fields, "date")
		}
		if c.timeSlot == "" {
			fields = append(fields, "timeSlot")
		}
		return newValidationError(ReasonScheduleMissing, ErrMsgScheduleMissing, fields...)
	}
	if c.serviceType == domain.ServiceHome {
		if blank := blankAddressFields(c.address); len(blank) > 0 {
			return newValidationError(ReasonAddressIncomplete, ErrMsgAddressIncomplete, blank...)
		}
	}
	if !c.session.IsAuthenticated() {
		return newValidationError(ReasonLoginRequired, ErrMsgLoginRequired)
	}
	return nil
}

func blankAddressFields(a domain.Address) []string {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"phone", a.Phone},
	}
	var blank []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			blank = append(blank, f.name)
		}
	}
	return blank
}

// Submit validates, posts the order and clears the cart on success.
// A failed submission leaves the cart and the collected fields untouched.
func (c *Checkout) Submit(ctx context.Context) (*Confirmation, error) {
	cart := c.cart.Snapshot()

	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case StateConfirmed:
		c.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	}
	if err := c.validateLocked(cart); err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}
	order := c.buildSubmissionLocked(cart)
	c.state = StateSubmitting
	c.lastErr = nil
	date, slot, service := c.date, c.timeSlot, c.serviceType
	c.mu.Unlock()

	c.logger.Info("submitting order",
		slog.String("order_id", order.OrderID),
		slog.String("service_type", string(service)),
		slog.Int("lines", len(order.Products)),
		slog.Float64("total", order.Amounts.Total),
	)

	receipt, err := c.orders.CreateOrder(ctx, order)
	if err == nil && (receipt == nil || !receipt.Success) {
		msg := ""
		if receipt != nil {
			msg = receipt.Message
		}
		err = &domain.RejectionError{Message: msg}
	}
	if err != nil {
		serr := submissionError(err)
		c.logger.Error("order submission failed",
			slog.String("order_id", order.OrderID),
			slog.String("error", err.Error()),
		)
		c.mu.Lock()
		c.state = StateCollecting
		c.lastErr = serr
		c.mu.Unlock()
		return nil, serr
	}

	conf := &Confirmation{
		OrderID:        order.OrderID,
		BackendOrderID: receipt.OrderID,
		ServiceType:    service,
		Date:           date,
		TimeSlot:       slot,
		Amounts:        order.Amounts,
	}
	c.mu.Lock()
	c.state = StateConfirmed
	c.confirmation = conf
	c.mu.Unlock()

	c.cart.Clear(ctx)
	c.logger.Info("order placed", slog.String("order_id", conf.DisplayOrderID()))

	out := *conf
	return &out, nil
}

func submissionError(err error) *SubmissionError {
	var rejection *domain.RejectionError
	if errors.As(err, &rejection) && rejection.Message != "" {
		return &SubmissionError{Message: rejection.Message, Err: err}
	}
	return &SubmissionError{Message: ErrMsgOrderFailed, Err: err}
}

func (c *Checkout) buildSubmissionLocked(cart domain.Cart) *domain.OrderSubmission {
	lines := make([]domain.OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	userID := ""
	if user := c.session.User(); user != nil {
		userID = user.ID
	}
	return &domain.OrderSubmission{
		UserID:   userID,
		Products: lines,
		Address:  c.address,
		Booking: domain.Booking{
			ServiceType: c.serviceType,
			Date:        c.date.UTC().Format(isoMillis),
			TimeSlot:    c.timeSlot,
		},
		PaymentType: PaymentLabel(c.paymentMethod),
		Amounts:     c.pricing.Checkout(cart.Items, c.serviceType),
		OrderID:     c.ids.NewOrderID(),
	}
}

// PaymentLabel maps a payment method to the label sent with the order.
func PaymentLabel(method string) string {
	switch method {
	case "", PaymentCashOnDelivery:
		return PaymentCashOnDeliveryLabel
	default:
		return method
	}
}
