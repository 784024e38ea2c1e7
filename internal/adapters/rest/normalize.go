// internal/adapters/rest/normalize.go
package rest

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

// normalizer turns backend text into plain text. Product and course copy
// is authored in a CMS and may carry markup.
type normalizer struct {
	policy *bluemonday.Policy
}

func newNormalizer() *normalizer {
	return &normalizer{policy: bluemonday.StrictPolicy()}
}

func (n *normalizer) text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
}

func (n *normalizer) texts(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := n.text(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...flexFloat) float64 {
	for _, v := range values {
		if v > 0 {
			return float64(v)
		}
	}
	return 0
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or a numeric string such as "4,999" or
// "₹4999". Unparseable strings read as zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexFloat(parseAmount(v))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// parseAmount reads the number out of price strings like "Rs. 499" or
// "1,299.50". A '.' only counts as the decimal point after a digit.
func parseAmount(s string) float64 {
	var b strings.Builder
	negative, seenDigit := false, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '.' && seenDigit:
			b.WriteRune(r)
		case r == '-' && !seenDigit:
			negative = true
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

type messageEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e messageEnvelope) text() string {
	return strings.TrimSpace(firstNonEmpty(e.Message, e.Error))
}

type wireUser struct {
	ID           flexString `json:"id"`
	MongoID      flexString `json:"_id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        flexString `json:"phone"`
	ReferralCode string     `json:"referralCode"`
}

// profile picks the id from id, then _id, then the envelope's userId, and
// splits a single "name" when first and last names are absent.
func profile(u *wireUser, fallbackID string) *domain.UserProfile {
	if u == nil {
		if fallbackID == "" {
			return nil
		}
		return &domain.UserProfile{ID: fallbackID}
	}
	p := &domain.UserProfile{
		ID:           firstNonEmpty(string(u.ID), string(u.MongoID), fallbackID),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        string(u.Phone),
		ReferralCode: u.ReferralCode,
	}
	if p.FirstName == "" && p.LastName == "" && u.Name != "" {
		first, last, _ := strings.Cut(strings.TrimSpace(u.Name), " ")
		p.FirstName = first
		p.LastName = strings.TrimSpace(last)
	}
	return p
}

type authEnvelope struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    *wireUser  `json:"user"`
	UserID  flexString `json:"userId"`
	messageEnvelope
}

type orderEnvelope struct {
	Success *bool      `json:"success"`
	OrderID flexString `json:"orderId"`
	Data    *struct {
		OrderID flexString `json:"orderId"`
		MongoID flexString `json:"_id"`
	} `json:"data"`
	messageEnvelope
}

func (e orderEnvelope) receipt() *domain.OrderReceipt {
	r := &domain.OrderReceipt{
		Success: e.Success == nil || *e.Success,
		OrderID: string(e.OrderID),
		Message: e.text(),
	}
	if r.OrderID == "" && e.Data != nil {
		r.OrderID = firstNonEmpty(string(e.Data.OrderID), string(e.Data.MongoID))
	}
	return r
}

// ackEnvelope is the {success, message} answer of write endpoints. A
// missing success flag counts as success.
type ackEnvelope struct {
	Success *bool `json:"success"`
	messageEnvelope
}

type wireProduct struct {
	ID            flexString             `json:"id"`
	MongoID       flexString             `json:"_id"`
	Name          string                 `json:"name"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Price         flexFloat              `json:"price"`
	OldPrice      flexFloat              `json:"oldPrice"`
	OriginalPrice flexFloat              `json:"originalPrice"`
	Discount      flexFloat              `json:"discount"`
	Image         string                 `json:"image"`
	Images        []string               `json:"images"`
	Category      string                 `json:"category"`
	SubCategory   string                 `json:"subCategory"`
	Tag           string                 `json:"tag"`
	Rating        flexFloat              `json:"rating"`
	Reviews       flexFloat              `json:"reviews"`
	Time          string                 `json:"time"`
	Duration      string                 `json:"duration"`
	ServiceType   string                 `json:"serviceType"`
	Gender        string                 `json:"gender"`
	Benefits      []string               `json:"benefits"`
	Overview      []string               `json:"overview"`
	ThingsToKnow  []string               `json:"thingsToKnow"`
	Precautions   []string               `json:"precautions"`
	Procedure     []domain.ProcedureStep `json:"procedure"`
	FAQs          []domain.FAQ           `json:"faqs"`
}

func (n *normalizer) product(w wireProduct) domain.Product {
	p := domain.Product{
		ID:            firstNonEmpty(string(w.MongoID), string(w.ID)),
		Name:          n.text(firstNonEmpty(w.Name, w.Title)),
		Description:   n.text(w.Description),
		Price:         float64(w.Price),
		OriginalPrice: firstPositive(w.OriginalPrice, w.OldPrice),
		Discount:      float64(w.Discount),
		Image:         w.Image,
		Images:        w.Images,
		Category:      w.Category,
		SubCategory:   w.SubCategory,
		Tag:           w.Tag,
		Rating:        float64(w.Rating),
		Reviews:       int(w.Reviews),
		Duration:      firstNonEmpty(w.Duration, w.Time),
		ServiceType:   w.ServiceType,
		Gender:        w.Gender,
		Benefits:      n.texts(w.Benefits),
		Overview:      n.texts(w.Overview),
		ThingsToKnow:  n.texts(w.ThingsToKnow),
		Precautions:   n.texts(w.Precautions),
	}
	for _, step := range w.Procedure {
		p.Procedure = append(p.Procedure, domain.ProcedureStep{
			Title: n.text(step.Title),
			Desc:  n.text(step.Desc),
			Image: step.Image,
		})
	}
	for _, faq := range w.FAQs {
		p.FAQs = append(p.FAQs, domain.FAQ{
			Question: n.text(faq.Question),
			Answer:   n.text(faq.Answer),
		})
	}
	return p
}

type wireCourse struct {
	ID          flexString `json:"id"`
	MongoID     flexString `json:"_id"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       flexFloat  `json:"price"`
	OldPrice    flexFloat  `json:"oldPrice"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Duration    string     `json:"duration"`
	Level       string     `json:"level"`
	Rating      flexFloat  `json:"rating"`
	Students    flexFloat  `json:"students"`
	Instructor  *struct {
		Name string `json:"name"`
	} `json:"instructor"`
	Certificate      bool     `json:"certificate"`
	WhatYouWillLearn []string `json:"whatYouWillLearn"`
	Prerequisites    []string `json:"prerequisites"`
	Curriculum       []struct {
		Week        flexFloat `json:"week"`
		Description string    `json:"description"`
		Topics      []string  `json:"topics"`
	} `json:"curriculum"`
}

func (n *normalizer) course(w wireCourse) domain.Course {
	c := domain.Course{
		ID:               firstNonEmpty(string(w.MongoID), string(w.ID)),
		Name:             n.text(firstNonEmpty(w.Name, w.Title)),
		Description:      n.text(w.Description),
		Price:            float64(w.Price),
		OldPrice:         float64(w.OldPrice),
		Image:            w.Image,
		Category:         w.Category,
		Duration:         w.Duration,
		Level:            w.Level,
		Rating:           float64(w.Rating),
		Students:         int(w.Students),
		Certificate:      w.Certificate,
		WhatYouWillLearn: n.texts(w.WhatYouWillLearn),
		Prerequisites:    n.texts(w.Prerequisites),
	}
	if w.Instructor != nil {
		c.InstructorName = n.text(w.Instructor.Name)
	}
	for _, week := range w.Curriculum {
		c.Curriculum = append(c.Curriculum, domain.CurriculumWeek{
			Week:        int(week.Week),
			Description: n.text(week.Description),
			Topics:      n.texts(week.Topics),
		})
	}
	return c
}

type wirePackage struct {
	ID            flexString              `json:"id"`
	MongoID       flexString              `json:"_id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Amount        flexFloat               `json:"amount"`
	Price         flexFloat               `json:"price"`
	OriginalPrice flexFloat               `json:"originalPrice"`
	Image         string                  `json:"image"`
	Services      []domain.PackageService `json:"services"`
	Duration      string                  `json:"duration"`
}

func (n *normalizer) pkg(w wirePackage) domain.Package {
	p := domain.Package{
		ID:            firstNonEmpty(string(w.MongoID), string(w.ID)),
		Name:          n.text(w.Name),
		Description:   n.text(w.Description),
		Price:         firstPositive(w.Amount, w.Price),
		OriginalPrice: float64(w.OriginalPrice),
		Image:         w.Image,
		Duration:      w.Duration,
	}
	for _, s := range w.Services {
		p.Services = append(p.Services, domain.PackageService{ProductID: s.ProductID, Name: n.text(s.Name)})
	}
	return p
}

type wireBanner struct {
	ID         flexString `json:"id"`
	MongoID    flexString `json:"_id"`
	ImageURL   string     `json:"imageUrl"`
	Section    string     `json:"section"`
	NavigateTo string     `json:"navigateTo"`
	Title      string     `json:"title"`
}

func (n *normalizer) banner(w wireBanner) domain.Banner {
	return domain.Banner{
		ID:         firstNonEmpty(string(w.MongoID), string(w.ID)),
		ImageURL:   w.ImageURL,
		Section:    w.Section,
		NavigateTo: w.NavigateTo,
		Title:      n.text(w.Title),
	}
}

type wireOrderLine struct {
	ProductID flexString `json:"productId"`
	Title     string     `json:"title"`
	Price     flexFloat  `json:"price"`
	Quantity  flexFloat  `json:"quantity"`
}

func orderLines(in []wireOrderLine) []domain.OrderLine {
	var out []domain.OrderLine
	for _, l := range in {
		out = append(out, domain.OrderLine{
			ProductID: string(l.ProductID),
			Title:     l.Title,
			Price:     float64(l.Price),
			Quantity:  int(l.Quantity),
		})
	}
	return out
}

type wireAmounts struct {
	Subtotal flexFloat `json:"subtotal"`
	Shipping flexFloat `json:"shipping"`
	Tax      flexFloat `json:"tax"`
	Total    flexFloat `json:"total"`
}

type wireOrder struct {
	ID          flexString      `json:"id"`
	MongoID     flexString      `json:"_id"`
	OrderID     flexString      `json:"orderId"`
	UserID      flexString      `json:"userId"`
	Products    []wireOrderLine `json:"products"`
	Address     domain.Address  `json:"address"`
	Booking     domain.Booking  `json:"booking"`
	PaymentType string          `json:"paymentType"`
	Amounts     wireAmounts     `json:"amounts"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
}

func (w wireOrder) toDomain() domain.Order {
	return domain.Order{
		ID:          firstNonEmpty(string(w.MongoID), string(w.ID)),
		OrderID:     string(w.OrderID),
		UserID:      string(w.UserID),
		Products:    orderLines(w.Products),
		Address:     w.Address,
		Booking:     w.Booking,
		PaymentType: w.PaymentType,
		Amounts: domain.Amounts{
			Subtotal: float64(w.Amounts.Subtotal),
			Shipping: float64(w.Amounts.Shipping),
			Tax:      float64(w.Amounts.Tax),
			Total:    float64(w.Amounts.Total),
		},
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}

type wireUserBooking struct {
	ID        flexString      `json:"id"`
	MongoID   flexString      `json:"_id"`
	OrderID   flexString      `json:"orderId"`
	Booking   domain.Booking  `json:"booking"`
	Products  []wireOrderLine `json:"products"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
}

func (w wireUserBooking) toDomain() domain.UserBooking {
	return domain.UserBooking{
		ID:        firstNonEmpty(string(w.MongoID), string(w.ID)),
		OrderID:   string(w.OrderID),
		Booking:   w.Booking,
		Products:  orderLines(w.Products),
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}

type wireEnrollment struct {
	UserID         flexString `json:"userId"`
	CourseID       flexString `json:"courseId"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
	CourseName     string     `json:"courseName"`
	CoursePrice    flexString `json:"coursePrice"`
	CourseCategory string     `json:"courseCategory"`
	CourseDuration string     `json:"courseDuration"`
	CourseImage    string     `json:"courseImage"`
	EnrollmentDate string     `json:"enrollmentDate"`
	PaymentStatus  string     `json:"paymentStatus"`
	Progress       flexFloat  `json:"progress"`
	Status         string     `json:"status"`
}

func (w wireEnrollment) toDomain() domain.Enrollment {
	return domain.Enrollment{
		UserID:         string(w.UserID),
		CourseID:       string(w.CourseID),
		UserName:       w.UserName,
		UserEmail:      w.UserEmail,
		CourseName:     w.CourseName,
		CoursePrice:    string(w.CoursePrice),
		CourseCategory: w.CourseCategory,
		CourseDuration: w.CourseDuration,
		CourseImage:    w.CourseImage,
		EnrollmentDate: w.EnrollmentDate,
		PaymentStatus:  w.PaymentStatus,
		Progress:       int(w.Progress),
		Status:         w.Status,
	}
}

type wireReferral struct {
	ReferralCode        string    `json:"referralCode"`
	TotalReferrals      flexFloat `json:"totalReferrals"`
	SuccessfulReferrals flexFloat `json:"successfulReferrals"`
	CoinsEarned         flexFloat `json:"coinsEarned"`
	PendingCoins        flexFloat `json:"pendingCoins"`
}

func (w wireReferral) toDomain() *domain.ReferralStatus {
	return &domain.ReferralStatus{
		ReferralCode:        w.ReferralCode,
		TotalReferrals:      int(w.TotalReferrals),
		SuccessfulReferrals: int(w.SuccessfulReferrals),
		CoinsEarned:         int(w.CoinsEarned),
		PendingCoins:        int(w.PendingCoins),
	}
}
