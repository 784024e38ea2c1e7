// internal/adapters/sandbox/server.go
package sandbox

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/metrics"
	"github.com/mahabubulhasibshawon/glamour-storefront/pkg/auth"
)

const (
	DemoEmail    = "demo@glamour.test"
	DemoPassword = "demo123"
)

// Server is an in-memory stand-in for the storefront backend, speaking
// the same JSON contract under /api.
type Server struct {
	store        *memoryStore
	authService  *AuthService
	orderService *OrderService
	issuer       *auth.Issuer
	metrics      metrics.Recorder
	gatherer     prometheus.Gatherer
	logger       *slog.Logger
}

// NewServer seeds the catalog and a demo account. A nil gatherer leaves
// /metrics unmounted.
func NewServer(issuer *auth.Issuer, rec metrics.Recorder, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	store := newMemoryStore()
	store.seedCatalog()

	s := &Server{
		store:        store,
		authService:  NewAuthService(store, issuer),
		orderService: NewOrderService(store),
		issuer:       issuer,
		metrics:      rec,
		gatherer:     gatherer,
		logger:       logger,
	}
	if _, _, err := s.authService.Signup(signupRequest{
		FirstName: "Demo",
		LastName:  "Customer",
		Email:     DemoEmail,
		Password:  DemoPassword,
		Phone:     "9876543210",
	}); err != nil {
		logger.Error("failed to seed demo user", "error", err)
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Post("/register", s.Register)

		r.Get("/products", s.ListProducts)
		r.Get("/products/related", s.ListRelatedProducts)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/courses", s.ListCourses)
		r.Get("/courses/{id}", s.GetCourse)
		r.Post("/courses/{id}/enroll", s.EnrollInCourse)
		r.Get("/packages", s.ListPackages)
		r.Get("/banners", s.ListBanners)

		r.Post("/enrollments", s.CreateEnrollment)
		r.Get("/enrollments/{userId}", s.ListEnrollments)
		r.Get("/enrollments/check/{courseId}/{userId}", s.CheckEnrollment)

		r.Post("/orders/create", s.CreateOrder)
		r.Get("/orders/{userId}", s.ListOrders)
		r.Get("/bookings/{userId}", s.ListBookings)
		r.Patch("/bookings/{id}/cancel", s.CancelBooking)

		r.With(s.bearerAuth).Get("/referral-status/{userId}", s.ReferralStatus)
	})
	return r
}

type authResponse struct {
	Success bool                `json:"success"`
	Token   string              `json:"token,omitempty"`
	User    *domain.UserProfile `json:"user,omitempty"`
	Message string              `json:"message"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, user, err := s.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Success: true, Token: token, User: user, Message: "Logged in"})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, user, err := s.authService.Signup(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errEmailTaken) {
			status = http.StatusConflict
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Success: true, Token: token, User: user, Message: "User registered successfully"})
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Products(false))
}

func (s *Server) ListRelatedProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Products(true))
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Product(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) ListCourses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Courses())
}

func (s *Server) GetCourse(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.Course(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) EnrollInCourse(w http.ResponseWriter, r *http.Request) {
	if !s.store.IncrementStudents(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Packages())
}

func (s *Server) ListBanners(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Banners())
}

func (s *Server) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var e domain.Enrollment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if e.UserID == "" || e.CourseID == "" {
		respondError(w, http.StatusBadRequest, "userId and courseId are required")
		return
	}
	if _, ok := s.store.Course(e.CourseID); !ok {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}
	if !s.store.AddEnrollment(e) {
		respondError(w, http.StatusConflict, "Already enrolled in this course")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "data": e})
}

func (s *Server) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.ListEnrollments(chi.URLParam(r, "userId")))
}

func (s *Server) CheckEnrollment(w http.ResponseWriter, r *http.Request) {
	enrolled := s.store.Enrolled(chi.URLParam(r, "courseId"), chi.URLParam(r, "userId"))
	respondJSON(w, http.StatusOK, map[string]bool{"isEnrolled": enrolled})
}

func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := s.orderService.CreateOrder(&req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Info("order created", "order_id", order.OrderID, "user_id", order.UserID, "total", order.Amounts.Total)
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"orderId": order.OrderID,
		"message": "Order Created Successfully",
	})
}

func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.orderService.ListOrders(chi.URLParam(r, "userId")))
}

func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.orderService.ListBookings(chi.URLParam(r, "userId")))
}

func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	err := s.orderService.CancelBooking(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, errBookingNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "message": err.Error()})
	default:
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Booking cancelled"})
	}
}

func (s *Server) ReferralStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.UserID != userID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}
	status, ok := s.store.Referral(userID)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}

// observe logs and counts each request under its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveHTTPRequest(route, r.Method, status, time.Since(start))
		s.logger.Debug("sandbox request",
			"method", r.Method, "route", route, "status", status,
			"request_id", r.Header.Get("X-Request-ID"))
	})
}
