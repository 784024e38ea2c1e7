// internal/adapters/sandbox/auth_service.go
package sandbox

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/pkg/auth"
)

const referralCoins = 50

var (
	errMissingFields      = errors.New("First name, email and password are required")
	errInvalidEmail       = errors.New("Please enter a valid email address")
	errWeakPassword       = errors.New("Password must be at least 6 characters long")
	errEmailTaken         = errors.New("An account with this email already exists")
	errInvalidReferral    = errors.New("Invalid referral code")
	errInvalidCredentials = errors.New("Invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type signupRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	ReferralCode string `json:"referralCode"`
}

type AuthService struct {
	store  *memoryStore
	issuer *auth.Issuer
}

func NewAuthService(store *memoryStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{store: store, issuer: issuer}
}

func (s *AuthService) Signup(req signupRequest) (string, *domain.UserProfile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.FirstName) == "" || email == "" || req.Password == "" {
		return "", nil, errMissingFields
	}
	if !emailPattern.MatchString(email) {
		return "", nil, errInvalidEmail
	}
	if len(req.Password) < 6 {
		return "", nil, errWeakPassword
	}

	var referredBy string
	if code := strings.ToUpper(strings.TrimSpace(req.ReferralCode)); code != "" {
		referrer := s.store.FindUserByReferralCode(code)
		if referrer == nil {
			return "", nil, errInvalidReferral
		}
		referredBy = referrer.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, errors.New("failed to hash password")
	}
	u := &user{
		UserProfile: domain.UserProfile{
			ID:           uuid.NewString(),
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        email,
			Phone:        strings.TrimSpace(req.Phone),
			ReferralCode: newReferralCode(req.FirstName),
		},
		Password:   string(hashedPassword),
		Age:        req.Age,
		Gender:     req.Gender,
		ReferredBy: referredBy,
	}
	if !s.store.CreateUser(u) {
		return "", nil, errEmailTaken
	}

	token, err := s.issuer.GenerateToken(u.Email, u.ID)
	if err != nil {
		return "", nil, err
	}
	profile := u.UserProfile
	return token, &profile, nil
}

func (s *AuthService) Login(email, password string) (string, *domain.UserProfile, error) {
	u := s.store.FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if u == nil {
		return "", nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}
	token, err := s.issuer.GenerateToken(u.Email, u.ID)
	if err != nil {
		return "", nil, err
	}
	profile := u.UserProfile
	return token, &profile, nil
}

// newReferralCode is up to four letters of the first name and four digits.
func newReferralCode(firstName string) string {
	var letters strings.Builder
	for _, r := range strings.ToUpper(firstName) {
		if r >= 'A' && r <= 'Z' {
			letters.WriteRune(r)
		}
		if letters.Len() == 4 {
			break
		}
	}
	if letters.Len() == 0 {
		letters.WriteString("GLAM")
	}
	return fmt.Sprintf("%s%04d", letters.String(), rand.IntN(10000))
}
