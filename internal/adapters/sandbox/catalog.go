// internal/adapters/sandbox/catalog.go
package sandbox

import "github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"

// The sandbox answers in the production backend's shapes: Mongo-style
// "_id", course prices as strings, package prices under "amount".

type wireProduct struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	OldPrice    float64      `json:"oldPrice,omitempty"`
	Discount    float64      `json:"discount,omitempty"`
	Image       string       `json:"image"`
	Category    string       `json:"category"`
	SubCategory string       `json:"subCategory,omitempty"`
	Rating      float64      `json:"rating"`
	Reviews     int          `json:"reviews"`
	Time        string       `json:"time,omitempty"`
	ServiceType string       `json:"serviceType,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Benefits    []string     `json:"benefits,omitempty"`
	FAQs        []domain.FAQ `json:"faqs,omitempty"`
	Related     bool         `json:"-"`
}

type instructor struct {
	Name string `json:"name"`
}

type wireCourse struct {
	ID               string                  `json:"_id"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Price            string                  `json:"price"`
	OldPrice         string                  `json:"oldPrice,omitempty"`
	Image            string                  `json:"image"`
	Category         string                  `json:"category"`
	Duration         string                  `json:"duration"`
	Level            string                  `json:"level"`
	Rating           float64                 `json:"rating"`
	Students         int                     `json:"students"`
	Instructor       instructor              `json:"instructor"`
	Certificate      bool                    `json:"certificate"`
	WhatYouWillLearn []string                `json:"whatYouWillLearn,omitempty"`
	Curriculum       []domain.CurriculumWeek `json:"curriculum,omitempty"`
}

type wirePackage struct {
	ID            string                  `json:"_id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Amount        float64                 `json:"amount"`
	OriginalPrice float64                 `json:"originalPrice,omitempty"`
	Image         string                  `json:"image"`
	Services      []domain.PackageService `json:"services"`
	Duration      string                  `json:"duration"`
}

type wireBanner struct {
	ID         string `json:"_id"`
	ImageURL   string `json:"imageUrl"`
	Section    string `json:"section"`
	NavigateTo string `json:"navigateTo"`
	Title      string `json:"title,omitempty"`
}

func (m *memoryStore) seedCatalog() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = []wireProduct{
		{
			ID: "prd-gold-facial", Name: "Gold Radiance Facial",
			Description: "<p>A brightening facial with <strong>24k gold</strong> serum.</p>",
			Price: 1499, OldPrice: 1999, Discount: 25, Image: "/images/gold-facial.jpg",
			Category: "Facial", SubCategory: "Brightening", Rating: 4.8, Reviews: 214,
			Time: "60 mins", ServiceType: "home", Gender: "female",
			Benefits: []string{"Instant glow", "Even skin tone"},
			FAQs:     []domain.FAQ{{Question: "Is it suitable for sensitive skin?", Answer: "Yes, after a patch test."}},
			Related:  true,
		},
		{
			ID: "prd-hair-spa", Title: "Keratin Hair Spa",
			Description: "Deep conditioning treatment for frizz-free hair.",
			Price: 899, OldPrice: 1199, Image: "/images/hair-spa.jpg",
			Category: "Hair", Rating: 4.6, Reviews: 98, Time: "45 mins", ServiceType: "clinic",
		},
		{
			ID: "prd-bridal-mehendi", Name: "Bridal Mehendi",
			Description: "Full hands and feet bridal mehendi by senior artists.",
			Price: 3499, Image: "/images/mehendi.jpg",
			Category: "Mehendi", Rating: 4.9, Reviews: 57, Time: "3 hrs", ServiceType: "home", Gender: "female",
			Related: true,
		},
		{
			ID: "prd-pedicure", Name: "Spa Pedicure",
			Description: "Exfoliation, massage and polish.",
			Price: 699, OldPrice: 799, Image: "/images/pedicure.jpg",
			Category: "Hands & Feet", Rating: 4.5, Reviews: 143, Time: "50 mins", ServiceType: "home",
		},
	}

	m.courses = []wireCourse{
		{
			ID: "crs-makeup-pro", Name: "Professional Makeup Artistry",
			Description: "From skin prep to bridal looks.",
			Price: "4999", OldPrice: "7999", Image: "/images/makeup-course.jpg",
			Category: "Makeup", Duration: "8 weeks", Level: "Beginner", Rating: 4.7, Students: 320,
			Instructor: instructor{Name: "Riya Kapoor"}, Certificate: true,
			WhatYouWillLearn: []string{"Colour theory", "Bridal base", "Airbrush basics"},
			Curriculum: []domain.CurriculumWeek{
				{Week: 1, Description: "Skin prep and tools", Topics: []string{"Skin types", "Brush care"}},
				{Week: 2, Description: "Base and contour"},
			},
		},
		{
			ID: "crs-nail-art", Name: "Nail Art Foundations",
			Description: "Gel, acrylic and hand-painted designs.",
			Price: "2999", Image: "/images/nail-course.jpg",
			Category: "Nails", Duration: "4 weeks", Level: "Beginner", Rating: 4.5, Students: 150,
			Instructor: instructor{Name: "Anita Sharma"}, Certificate: true,
		},
	}

	m.packages = []wirePackage{
		{
			ID: "pkg-pre-bridal", Name: "Pre-Bridal Glow",
			Description: "Facial, spa pedicure and hair spa in one visit.",
			Amount: 2799, OriginalPrice: 3097, Image: "/images/pre-bridal.jpg",
			Services: []domain.PackageService{
				{ProductID: "prd-gold-facial", Name: "Gold Radiance Facial"},
				{ProductID: "prd-pedicure", Name: "Spa Pedicure"},
				{ProductID: "prd-hair-spa", Name: "Keratin Hair Spa"},
			},
			Duration: "2 hrs 30 mins",
		},
	}

	m.banners = []wireBanner{
		{ID: "bnr-hero", ImageURL: "/images/banner-hero.jpg", Section: "hero", NavigateTo: "/services", Title: "Salon at home"},
		{ID: "bnr-academy", ImageURL: "/images/banner-academy.jpg", Section: "academy", NavigateTo: "/courses", Title: "Become a pro"},
	}
}

func (m *memoryStore) Products(relatedOnly bool) []wireProduct {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []wireProduct{}
	for _, p := range m.products {
		if !relatedOnly || p.Related {
			out = append(out, p)
		}
	}
	return out
}

func (m *memoryStore) Product(id string) (wireProduct, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return wireProduct{}, false
}

func (m *memoryStore) Courses() []wireCourse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]wireCourse{}, m.courses...)
}

func (m *memoryStore) Course(id string) (wireCourse, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.courses {
		if c.ID == id {
			return c, true
		}
	}
	return wireCourse{}, false
}

func (m *memoryStore) Packages() []wirePackage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]wirePackage{}, m.packages...)
}

func (m *memoryStore) Banners() []wireBanner {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]wireBanner{}, m.banners...)
}
