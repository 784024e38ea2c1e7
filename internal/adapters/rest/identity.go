// internal/adapters/rest/identity.go
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	ReferralCode string `json:"referralCode"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "login", "/login", loginRequest{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "register", "/register", registerRequest{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Password:     reg.Password,
		Phone:        reg.Phone,
		Age:          reg.Age,
		Gender:       reg.Gender,
		ReferralCode: reg.ReferralCode,
	})
}

// authenticate reads the envelope whatever the status code: the identity
// endpoints report rejections as {success:false, message} on 4xx.
func (c *Client) authenticate(ctx context.Context, endpoint, path string, body any) (*domain.AuthResult, error) {
	resp, err := c.send(ctx, request{
		endpoint: endpoint,
		method:   http.MethodPost,
		url:      c.authBase + path,
		body:     body,
	})
	if err != nil {
		return nil, err
	}

	var env authEnvelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s returned status %d with an unreadable body", domain.ErrNetwork, endpoint, resp.status)
	}
	return &domain.AuthResult{
		Success: env.Success && resp.ok(),
		Token:   env.Token,
		User:    profile(env.User, string(env.UserID)),
		Message: env.text(),
	}, nil
}
