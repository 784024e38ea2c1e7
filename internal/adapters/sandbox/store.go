// internal/adapters/sandbox/store.go
package sandbox

import (
	"sync"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

type user struct {
	domain.UserProfile
	Password   string
	Age        string
	Gender     string
	ReferredBy string
	Ordered    bool
}

// memoryStore is the sandbox's whole backend state.
type memoryStore struct {
	mu          sync.RWMutex
	users       map[string]*user // by email
	usersByID   map[string]*user
	referrals   map[string]*domain.ReferralStatus // by user id
	orders      []domain.Order
	bookings    []*domain.UserBooking
	enrollments []domain.Enrollment
	products    []wireProduct
	courses     []wireCourse
	packages    []wirePackage
	banners     []wireBanner
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[string]*user),
		usersByID: make(map[string]*user),
		referrals: make(map[string]*domain.ReferralStatus),
	}
}

func (m *memoryStore) FindUserByEmail(email string) *user {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[email]
}

func (m *memoryStore) UserExists(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.usersByID[id]
	return ok
}

func (m *memoryStore) FindUserByReferralCode(code string) *user {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.usersByID {
		if u.ReferralCode == code {
			return u
		}
	}
	return nil
}

// CreateUser stores u unless the email is taken. The referrer, if any,
// gets a pending referral.
func (m *memoryStore) CreateUser(u *user) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return false
	}
	m.users[u.Email] = u
	m.usersByID[u.ID] = u
	m.referrals[u.ID] = &domain.ReferralStatus{ReferralCode: u.ReferralCode}
	if u.ReferredBy != "" {
		if r, ok := m.referrals[u.ReferredBy]; ok {
			r.TotalReferrals++
			r.PendingCoins += referralCoins
		}
	}
	return true
}

func (m *memoryStore) Referral(userID string) (domain.ReferralStatus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.referrals[userID]
	if !ok {
		return domain.ReferralStatus{}, false
	}
	return *r, true
}

// CreateOrder stores the order and its booking. A referred user's first
// order turns the referrer's pending coins into earned ones.
func (m *memoryStore) CreateOrder(order domain.Order, booking *domain.UserBooking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	m.bookings = append(m.bookings, booking)

	u, ok := m.usersByID[order.UserID]
	if !ok || u.Ordered {
		return
	}
	u.Ordered = true
	if r, ok := m.referrals[u.ReferredBy]; ok {
		r.SuccessfulReferrals++
		r.CoinsEarned += referralCoins
		r.PendingCoins -= referralCoins
	}
}

func (m *memoryStore) ListOrders(userID string) []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			out = append(out, m.orders[i])
		}
	}
	return out
}

func (m *memoryStore) ListBookings(userID string) []domain.UserBooking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owners := make(map[string]string, len(m.orders))
	for _, o := range m.orders {
		owners[o.OrderID] = o.UserID
	}
	out := []domain.UserBooking{}
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if owners[m.bookings[i].OrderID] == userID {
			out = append(out, *m.bookings[i])
		}
	}
	return out
}

// CancelBooking reports found=false for an unknown id and ok=false when
// the booking is no longer cancellable.
func (m *memoryStore) CancelBooking(id string) (found, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID != id {
			continue
		}
		if b.Status != bookingPending && b.Status != bookingConfirmed {
			return true, false
		}
		b.Status = bookingCancelled
		for i := range m.orders {
			if m.orders[i].OrderID == b.OrderID {
				m.orders[i].Status = bookingCancelled
			}
		}
		return true, true
	}
	return false, false
}

func (m *memoryStore) AddEnrollment(e domain.Enrollment) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return false
		}
	}
	m.enrollments = append(m.enrollments, e)
	return true
}

func (m *memoryStore) Enrolled(courseID, userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (m *memoryStore) ListEnrollments(userID string) []domain.Enrollment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Enrollment{}
	for _, e := range m.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// IncrementStudents bumps the course's student count.
func (m *memoryStore) IncrementStudents(courseID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courses {
		if m.courses[i].ID == courseID {
			m.courses[i].Students++
			return true
		}
	}
	return false
}
