// internal/application/account_service.go
package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

const EnrolledCoursesStorageKey = "enrolledCourses"

// AccountService serves the profile pages of the signed-in user.
type AccountService struct {
	account ports.AccountPort
	session *AuthSession
	storage ports.StoragePort
	logger  *slog.Logger
	now     func() time.Time
}

func NewAccountService(account ports.AccountPort, session *AuthSession, storage ports.StoragePort, logger *slog.Logger) *AccountService {
	return &AccountService{
		account: account,
		session: session,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *AccountService) currentUser() (*domain.UserProfile, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	return s.session.User(), nil
}

func (s *AccountService) Orders(ctx context.Context) ([]domain.Order, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.account.ListOrders(ctx, user.ID)
}

func (s *AccountService) Bookings(ctx context.Context) ([]domain.UserBooking, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.account.ListBookings(ctx, user.ID)
}

func (s *AccountService) CancelBooking(ctx context.Context, bookingID string) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	return s.account.CancelBooking(ctx, bookingID)
}

func (s *AccountService) Enrollments(ctx context.Context) ([]domain.Enrollment, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.account.ListEnrollments(ctx, user.ID)
}

func (s *AccountService) IsEnrolled(ctx context.Context, courseID string) (bool, error) {
	user, err := s.currentUser()
	if err != nil {
		return false, err
	}
	return s.account.CheckEnrollment(ctx, courseID, user.ID)
}

// Enroll records the enrollment, enrolls the user in the course and then
// appends the record to the local enrolledCourses cache.
func (s *AccountService) Enroll(ctx context.Context, course domain.Course) (*domain.Enrollment, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	enrollment := domain.Enrollment{
		UserID:         user.ID,
		CourseID:       course.ID,
		UserName:       user.FullName(),
		UserEmail:      user.Email,
		CourseName:     course.Name,
		CoursePrice:    strconv.FormatFloat(course.Price, 'f', -1, 64),
		CourseCategory: course.Category,
		CourseDuration: course.Duration,
		CourseImage:    course.Image,
		EnrollmentDate: s.now().UTC().Format(isoMillis),
		PaymentStatus:  "pending",
		Progress:       0,
		Status:         "active",
	}
	if err := s.account.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	if err := s.account.EnrollInCourse(ctx, course.ID); err != nil {
		return nil, err
	}

	cached := s.CachedEnrollments(ctx)
	cached = append(cached, enrollment)
	if data, err := json.Marshal(cached); err == nil {
		if err := s.storage.Set(ctx, EnrolledCoursesStorageKey, data); err != nil {
			s.logger.Warn("failed to cache enrollment", slog.String("error", err.Error()))
		}
	}
	return &enrollment, nil
}

// CachedEnrollments returns the local enrollment cache; unreadable content
// is treated as empty.
func (s *AccountService) CachedEnrollments(ctx context.Context) []domain.Enrollment {
	raw, found, err := s.storage.Get(ctx, EnrolledCoursesStorageKey)
	if err != nil || !found {
		return []domain.Enrollment{}
	}
	var out []domain.Enrollment
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("discarding malformed enrollment cache", slog.String("error", err.Error()))
		return []domain.Enrollment{}
	}
	return out
}

func (s *AccountService) ReferralStatus(ctx context.Context) (*domain.ReferralStatus, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	return s.account.GetReferralStatus(ctx, user.ID, s.session.Token())
}
