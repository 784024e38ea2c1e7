// internal/adapters/rest/account.go
package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func (c *Client) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	resp, err := c.get(ctx, "orders.list", "/orders/"+url.PathEscape(userID), "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireOrder]("orders.list", resp)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

func (c *Client) ListBookings(ctx context.Context, userID string) ([]domain.UserBooking, error) {
	resp, err := c.get(ctx, "bookings.list", "/bookings/"+url.PathEscape(userID), "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireUserBooking]("bookings.list", resp)
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.UserBooking, 0, len(wire))
	for _, w := range wire {
		bookings = append(bookings, w.toDomain())
	}
	return bookings, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.acknowledge(ctx, request{
		endpoint: "bookings.cancel",
		method:   http.MethodPatch,
		url:      c.apiBase + "/bookings/" + url.PathEscape(bookingID) + "/cancel",
	})
}

func (c *Client) ListEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	resp, err := c.get(ctx, "enrollments.list", "/enrollments/"+url.PathEscape(userID), "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireEnrollment]("enrollments.list", resp)
	if err != nil {
		return nil, err
	}
	enrollments := make([]domain.Enrollment, 0, len(wire))
	for _, w := range wire {
		enrollments = append(enrollments, w.toDomain())
	}
	return enrollments, nil
}

func (c *Client) CheckEnrollment(ctx context.Context, courseID, userID string) (bool, error) {
	resp, err := c.get(ctx, "enrollments.check",
		"/enrollments/check/"+url.PathEscape(courseID)+"/"+url.PathEscape(userID), "")
	if err != nil {
		return false, err
	}
	var out struct {
		IsEnrolled bool `json:"isEnrolled"`
	}
	if err := decode("enrollments.check", resp, &out); err != nil {
		return false, err
	}
	return out.IsEnrolled, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	return c.acknowledge(ctx, request{
		endpoint: "enrollments.create",
		method:   http.MethodPost,
		url:      c.apiBase + "/enrollments",
		body:     enrollment,
	})
}

func (c *Client) EnrollInCourse(ctx context.Context, courseID string) error {
	return c.acknowledge(ctx, request{
		endpoint: "courses.enroll",
		method:   http.MethodPost,
		url:      c.apiBase + "/courses/" + url.PathEscape(courseID) + "/enroll",
	})
}

func (c *Client) GetReferralStatus(ctx context.Context, userID, token string) (*domain.ReferralStatus, error) {
	resp, err := c.get(ctx, "referral.status", "/referral-status/"+url.PathEscape(userID), token)
	if err != nil {
		return nil, err
	}
	var env struct {
		wireReferral
		Data *wireReferral `json:"data"`
	}
	if err := decode("referral.status", resp, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		return env.Data.toDomain(), nil
	}
	return env.wireReferral.toDomain(), nil
}

// acknowledge sends a write whose answer is {success, message}. An empty
// 2xx body is accepted; an explicit success=false is a rejection.
func (c *Client) acknowledge(ctx context.Context, req request) error {
	resp, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}
	if len(resp.body) == 0 {
		return nil
	}
	var ack ackEnvelope
	if err := decode(req.endpoint, resp, &ack); err != nil {
		return err
	}
	if ack.Success != nil && !*ack.Success {
		return &domain.RejectionError{Status: resp.status, Message: ack.text()}
	}
	return nil
}
