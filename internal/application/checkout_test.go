// internal/application/checkout_test.go
package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

var fullAddress = domain.Address{
	FullName: "Asha Rao",
	Street:   "12 MG Road",
	City:     "Pune",
	State:    "MH",
	ZipCode:  "411001",
	Phone:    "9876543210",
}

var appointment = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	cart     *CartStore
	session  *AuthSession
	orders   *ports.MockOrderPort
	checkout *Checkout
}

// newCheckoutFixture builds a checkout over a cart holding p1 x2 at 500,
// optionally signed in as demoUser.
func newCheckoutFixture(t *testing.T, ctrl *gomock.Controller, signedIn bool) *checkoutFixture {
	t.Helper()
	ctx := context.Background()
	storage := newMemStorage()

	identity := ports.NewMockIdentityPort(ctrl)
	session := NewAuthSession(ctx, identity, storage, discardLogger())
	if signedIn {
		identity.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.AuthResult{Success: true, Token: "tok", User: demoUser}, nil)
		if outcome := session.Login(ctx, demoUser.Email, "secret1"); !outcome.Success {
			t.Fatalf("login failed: %s", outcome.Message)
		}
	}

	cart := NewCartStore(ctx, storage, discardLogger())
	cart.AddItem(ctx, facial)
	cart.AddItem(ctx, facial)

	orders := ports.NewMockOrderPort(ctrl)
	co := NewCheckout(cart, session, orders, fixedOrderIDs("ORD-123456"), NewPricing(99, 0.18), discardLogger())
	return &checkoutFixture{cart: cart, session: session, orders: orders, checkout: co}
}

func (f *checkoutFixture) fill(t *testing.T, service domain.ServiceType, address domain.Address) {
	t.Helper()
	if err := f.checkout.SetServiceType(service); err != nil {
		t.Fatalf("SetServiceType() error = %v", err)
	}
	if err := f.checkout.SetSchedule(appointment, "10:00 AM - 11:00 AM"); err != nil {
		t.Fatalf("SetSchedule() error = %v", err)
	}
	if err := f.checkout.SetAddress(address); err != nil {
		t.Fatalf("SetAddress() error = %v", err)
	}
}

func TestCheckout_PrefillsFromSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCheckoutFixture(t, ctrl, true)

	addr := f.checkout.Address()
	if addr.FullName != "Asha Rao" || addr.Phone != demoUser.Phone {
		t.Errorf("prefilled address = %+v", addr)
	}
	if f.checkout.ServiceType() != domain.ServiceHome || f.checkout.State() != StateCollecting {
		t.Errorf("initial service/state = %s/%s", f.checkout.ServiceType(), f.checkout.State())
	}
}

func TestCheckout_Validate(t *testing.T) {
	tests := []struct {
		name       string
		signedIn   bool
		emptyCart  bool
		service    domain.ServiceType
		noSchedule bool
		address    domain.Address
		wantReason Reason
		wantFields []string
	}{
		{
			name:       "Empty cart wins over everything",
			emptyCart:  true,
			noSchedule: true,
			service:    domain.ServiceHome,
			wantReason: ReasonCartEmpty,
		},
		{
			name:       "Missing schedule",
			signedIn:   true,
			noSchedule: true,
			service:    domain.ServiceHome,
			address:    fullAddress,
			wantReason: ReasonScheduleMissing,
			wantFields: []string{"date", "timeSlot"},
		},
		{
			name:       "Home service needs every address field",
			signedIn:   true,
			service:    domain.ServiceHome,
			address:    domain.Address{FullName: "Asha Rao", Street: "12 MG Road", City: "  ", Phone: "9876543210"},
			wantReason: ReasonAddressIncomplete,
			wantFields: []string{"city", "state", "zipCode"},
		},
		{
			name:     "Clinic ignores the address",
			signedIn: true,
			service:  domain.ServiceClinic,
		},
		{
			name:       "Login required",
			service:    domain.ServiceClinic,
			wantReason: ReasonLoginRequired,
		},
		{
			name:     "Complete home order",
			signedIn: true,
			service:  domain.ServiceHome,
			address:  fullAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newCheckoutFixture(t, ctrl, tt.signedIn)
			if tt.emptyCart {
				f.cart.Clear(context.Background())
			}
			f.fill(t, tt.service, tt.address)
			if tt.noSchedule {
				f.checkout.SetSchedule(time.Time{}, "")
			}

			err := f.checkout.Validate()

			if tt.wantReason == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", verr.Reason, tt.wantReason)
			}
			if tt.wantFields != nil && fmt.Sprint(verr.Fields) != fmt.Sprint(tt.wantFields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.wantFields)
			}
			if reason, ok := ReasonOf(err); !ok || reason != tt.wantReason {
				t.Errorf("ReasonOf() = %s, %v", reason, ok)
			}
		})
	}
}

func TestCheckout_InvalidServiceType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCheckoutFixture(t, ctrl, true)

	err := f.checkout.SetServiceType("salon")
	if reason, _ := ReasonOf(err); reason != ReasonInvalidServiceType {
		t.Errorf("SetServiceType(salon) error = %v", err)
	}
	if f.checkout.ServiceType() != domain.ServiceHome {
		t.Errorf("service type changed to %s", f.checkout.ServiceType())
	}
}

func TestCheckout_SubmitValidationSkipsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCheckoutFixture(t, ctrl, false)
	f.fill(t, domain.ServiceHome, fullAddress)
	// no EXPECT on orders: any call fails the test

	conf, err := f.checkout.Submit(context.Background())

	if conf != nil || err == nil {
		t.Fatalf("Submit() = %v, %v, want validation error", conf, err)
	}
	if reason, _ := ReasonOf(err); reason != ReasonLoginRequired {
		t.Errorf("reason = %s, want %s", reason, ReasonLoginRequired)
	}
	if f.checkout.LastError() != err {
		t.Errorf("LastError() = %v, want %v", f.checkout.LastError(), err)
	}
}

func TestCheckout_SubmitSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	f := newCheckoutFixture(t, ctrl, true)
	f.fill(t, domain.ServiceHome, fullAddress)

	var sent *domain.OrderSubmission
	f.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, order *domain.OrderSubmission) (*domain.OrderReceipt, error) {
			sent = order
			return &domain.OrderReceipt{Success: true, OrderID: "BK-900"}, nil
		})

	conf, err := f.checkout.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	wantAmounts := domain.Amounts{Subtotal: 1000, Shipping: 99, Tax: 180, Total: 1279}
	if sent.Amounts != wantAmounts {
		t.Errorf("amounts = %+v, want %+v", sent.Amounts, wantAmounts)
	}
	if sent.OrderID != "ORD-123456" || sent.UserID != demoUser.ID {
		t.Errorf("order/user id = %s/%s", sent.OrderID, sent.UserID)
	}
	if sent.Booking.Date != "2026-10-20T00:00:00.000Z" || sent.Booking.TimeSlot != "10:00 AM - 11:00 AM" {
		t.Errorf("booking = %+v", sent.Booking)
	}
	if sent.PaymentType != PaymentCashOnDeliveryLabel {
		t.Errorf("payment = %q", sent.PaymentType)
	}
	if len(sent.Products) != 1 || sent.Products[0].Quantity != 2 || sent.Products[0].Price != 500 {
		t.Errorf("lines = %+v", sent.Products)
	}

	if conf.OrderID != "ORD-123456" || conf.BackendOrderID != "BK-900" || conf.DisplayOrderID() != "ORD-123456" {
		t.Errorf("confirmation ids = %+v", conf)
	}
	if !conf.Date.Equal(appointment) || conf.TimeSlot != "10:00 AM - 11:00 AM" {
		t.Errorf("confirmation schedule = %v %s", conf.Date, conf.TimeSlot)
	}
	if !f.cart.IsEmpty() {
		t.Error("cart not cleared after confirmation")
	}
	if f.checkout.State() != StateConfirmed {
		t.Errorf("state = %s, want confirmed", f.checkout.State())
	}
	if stored, ok := f.checkout.Confirmation(); !ok || stored.OrderID != conf.OrderID {
		t.Errorf("Confirmation() = %+v, %v", stored, ok)
	}

	if _, err := f.checkout.Submit(ctx); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("second Submit() error = %v, want ErrAlreadyConfirmed", err)
	}
	if err := f.checkout.SetAddress(domain.Address{}); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("SetAddress() after confirmation = %v", err)
	}
}

func TestCheckout_ClinicHasNoShipping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCheckoutFixture(t, ctrl, true)
	f.fill(t, domain.ServiceClinic, domain.Address{})

	want := domain.Amounts{Subtotal: 1000, Shipping: 0, Tax: 180, Total: 1180}
	if got := f.checkout.Summary(); got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestCheckout_SubmitFailureKeepsState(t *testing.T) {
	tests := []struct {
		name    string
		receipt *domain.OrderReceipt
		err     error
		wantMsg string
	}{
		{
			name:    "Backend says no",
			receipt: &domain.OrderReceipt{Success: false, Message: "Slot fully booked"},
			wantMsg: "Slot fully booked",
		},
		{
			name:    "Success false without message",
			receipt: &domain.OrderReceipt{Success: false},
			wantMsg: ErrMsgOrderFailed,
		},
		{
			name:    "Rejected",
			err:     &domain.RejectionError{Status: 422, Message: "invalid phone number"},
			wantMsg: "invalid phone number",
		},
		{
			name:    "Network",
			err:     fmt.Errorf("%w: timeout", domain.ErrNetwork),
			wantMsg: ErrMsgOrderFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			f := newCheckoutFixture(t, ctrl, true)
			f.fill(t, domain.ServiceHome, fullAddress)
			f.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(tt.receipt, tt.err)

			_, err := f.checkout.Submit(ctx)

			var serr *SubmissionError
			if !errors.As(err, &serr) || serr.Message != tt.wantMsg {
				t.Fatalf("Submit() error = %v, want SubmissionError %q", err, tt.wantMsg)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("submission error does not wrap %v", tt.err)
			}
			if f.cart.Count() != 2 {
				t.Errorf("cart count = %d, want 2 (unchanged)", f.cart.Count())
			}
			if f.checkout.Address() != fullAddress {
				t.Errorf("address lost: %+v", f.checkout.Address())
			}
			if f.checkout.State() != StateCollecting {
				t.Errorf("state = %s, want collecting", f.checkout.State())
			}

			// resubmission works once the backend recovers
			f.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(&domain.OrderReceipt{Success: true}, nil)
			conf, err := f.checkout.Submit(ctx)
			if err != nil || conf.DisplayOrderID() != "ORD-123456" {
				t.Errorf("resubmit = %+v, %v", conf, err)
			}
		})
	}
}

func TestCheckout_GuardsReentrantSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	f := newCheckoutFixture(t, ctrl, true)
	f.fill(t, domain.ServiceHome, fullAddress)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, order *domain.OrderSubmission) (*domain.OrderReceipt, error) {
			close(entered)
			<-release
			return &domain.OrderReceipt{Success: true}, nil
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := f.checkout.Submit(ctx)
		done <- err
	}()
	<-entered

	if f.checkout.State() != StateSubmitting {
		t.Errorf("state = %s, want submitting", f.checkout.State())
	}
	if _, err := f.checkout.Submit(ctx); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("concurrent Submit() error = %v, want ErrSubmissionInFlight", err)
	}
	if err := f.checkout.SetPaymentMethod("upi"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("edit during submission = %v, want ErrSubmissionInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
}

func TestRandomOrderIDs(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{6}$`)
	var ids RandomOrderIDs
	for i := 0; i < 100; i++ {
		if id := ids.NewOrderID(); !pattern.MatchString(id) {
			t.Fatalf("NewOrderID() = %q, want ORD- and six digits", id)
		}
	}
}

func TestPaymentLabel(t *testing.T) {
	tests := map[string]string{
		"":                    PaymentCashOnDeliveryLabel,
		PaymentCashOnDelivery: PaymentCashOnDeliveryLabel,
		"UPI":                 "UPI",
	}
	for in, want := range tests {
		if got := PaymentLabel(in); got != want {
			t.Errorf("PaymentLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfirmation_DisplayOrderID(t *testing.T) {
	tests := []struct {
		name string
		conf Confirmation
		want string
	}{
		{name: "Generated id wins over backend id", conf: Confirmation{OrderID: "ORD-123456", BackendOrderID: "665f1c2ab9e0"}, want: "ORD-123456"},
		{name: "Backend id when nothing was generated", conf: Confirmation{BackendOrderID: "665f1c2ab9e0"}, want: "665f1c2ab9e0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.DisplayOrderID(); got != tt.want {
				t.Errorf("DisplayOrderID() = %q, want %q", got, tt.want)
			}
		})
	}
}
