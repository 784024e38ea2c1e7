// internal/application/auth_session.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
	"github.com/mahabubulhasibshawon/glamour-storefront/pkg/auth"
)

const (
	TokenStorageKey  = "authToken"
	UserStorageKey   = "userData"
	UserIDStorageKey = "userId"
)

const (
	MsgNetworkError          = "Network error. Please try again."
	MsgLoginFailed           = "Login failed"
	MsgRegistrationFailed    = "Registration failed"
	MsgCredentialsRequired   = "Please enter both email and password"
	MsgRequiredFieldsMissing = "Please fill in all required fields"
	MsgPasswordTooShort      = "Password must be at least 6 characters long"
	MsgPasswordMismatch      = "Please make sure your passwords match."
)

const minPasswordLength = 6

// AuthOutcome is what login and register report. They never return errors.
type AuthOutcome struct {
	Success bool
	Message string
}

type AuthSession struct {
	mu       sync.RWMutex
	token    string
	user     *domain.UserProfile
	loading  atomic.Bool
	identity ports.IdentityPort
	storage  ports.StoragePort
	logger   *slog.Logger
	subs     subscribers[*domain.UserProfile]
}

// NewAuthSession restores a stored session before returning.
func NewAuthSession(ctx context.Context, identity ports.IdentityPort, storage ports.StoragePort, logger *slog.Logger) *AuthSession {
	s := &AuthSession{identity: identity, storage: storage, logger: logger}
	s.loading.Store(true)
	s.restore(ctx)
	s.loading.Store(false)
	return s
}

func (s *AuthSession) restore(ctx context.Context) {
	token, foundToken, err := s.storage.Get(ctx, TokenStorageKey)
	if err != nil {
		s.logger.Warn("failed to read stored token", slog.String("error", err.Error()))
		return
	}
	rawUser, foundUser, err := s.storage.Get(ctx, UserStorageKey)
	if err != nil {
		s.logger.Warn("failed to read stored user", slog.String("error", err.Error()))
		return
	}
	if !foundToken || !foundUser || len(token) == 0 {
		return
	}
	var user domain.UserProfile
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn("discarding malformed stored user", slog.String("error", err.Error()))
		return
	}
	s.token = string(token)
	s.user = &user
}

func (s *AuthSession) IsLoading() bool {
	return s.loading.Load()
}

func (s *AuthSession) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *AuthSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil.
func (s *AuthSession) User() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// ExpiresAt reads the exp claim of the token without verifying it.
func (s *AuthSession) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims, err := auth.Inspect(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *AuthSession) Subscribe(fn func(*domain.UserProfile)) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *AuthSession) Login(ctx context.Context, email, password string) AuthOutcome {
	if email == "" || password == "" {
		return AuthOutcome{Message: MsgCredentialsRequired}
	}
	result, err := s.identity.Login(ctx, email, password)
	return s.complete(ctx, "login", result, err, MsgLoginFailed)
}

func (s *AuthSession) Register(ctx context.Context, reg domain.Registration) AuthOutcome {
	if reg.FirstName == "" || reg.Email == "" || reg.Password == "" {
		return AuthOutcome{Message: MsgRequiredFieldsMissing}
	}
	if len(reg.Password) < minPasswordLength {
		return AuthOutcome{Message: MsgPasswordTooShort}
	}
	if reg.ConfirmPassword != "" && reg.ConfirmPassword != reg.Password {
		return AuthOutcome{Message: MsgPasswordMismatch}
	}
	reg.ReferralCode = strings.ToUpper(strings.TrimSpace(reg.ReferralCode))
	reg.ConfirmPassword = ""

	result, err := s.identity.Register(ctx, reg)
	return s.complete(ctx, "register", result, err, MsgRegistrationFailed)
}

func (s *AuthSession) complete(ctx context.Context, op string, result *domain.AuthResult, err error, fallback string) AuthOutcome {
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) && rejection.Message != "" {
			return AuthOutcome{Message: rejection.Message}
		}
		s.logger.Error("identity request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return AuthOutcome{Message: MsgNetworkError}
	}
	if result == nil || !result.Success || result.Token == "" || result.User == nil {
		msg := fallback
		if result != nil && result.Message != "" {
			msg = result.Message
		}
		return AuthOutcome{Message: msg}
	}

	user := *result.User
	s.mu.Lock()
	s.token = result.Token
	s.user = &user
	s.mu.Unlock()

	s.persist(ctx, result.Token, user)
	s.logger.Info("session started", slog.String("op", op), slog.String("user_id", user.ID))
	s.subs.notify(&user)
	return AuthOutcome{Success: true}
}

func (s *AuthSession) persist(ctx context.Context, token string, user domain.UserProfile) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("failed to encode user", slog.String("error", err.Error()))
		return
	}
	writes := []struct {
		key   string
		value []byte
	}{
		{TokenStorageKey, []byte(token)},
		{UserStorageKey, data},
		{UserIDStorageKey, []byte(user.ID)},
	}
	for _, w := range writes {
		if err := s.storage.Set(ctx, w.key, w.value); err != nil {
			s.logger.Error("failed to persist session",
				slog.String("key", w.key),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *AuthSession) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	for _, key := range []string{TokenStorageKey, UserStorageKey, UserIDStorageKey} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("failed to erase session key",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	s.subs.notify(nil)
}
