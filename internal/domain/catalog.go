// internal/domain/catalog.go
package domain

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ProcedureStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Image string `json:"img,omitempty"`
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         float64         `json:"price"`
	OriginalPrice float64         `json:"originalPrice"`
	Discount      float64         `json:"discount"`
	Image         string          `json:"image"`
	Images        []string        `json:"images"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"subCategory"`
	Tag           string          `json:"tag"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Duration      string          `json:"duration"`
	ServiceType   string          `json:"serviceType"`
	Gender        string          `json:"gender"`
	Benefits      []string        `json:"benefits"`
	Overview      []string        `json:"overview"`
	ThingsToKnow  []string        `json:"thingsToKnow"`
	Precautions   []string        `json:"precautions"`
	Procedure     []ProcedureStep `json:"procedure"`
	FAQs          []FAQ           `json:"faqs"`
}

type CurriculumWeek struct {
	Week        int      `json:"week"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

type Course struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Price            float64          `json:"price"`
	OldPrice         float64          `json:"oldPrice"`
	Image            string           `json:"image"`
	Category         string           `json:"category"`
	Duration         string           `json:"duration"`
	Level            string           `json:"level"`
	Rating           float64          `json:"rating"`
	Students         int              `json:"students"`
	InstructorName   string           `json:"instructorName"`
	Certificate      bool             `json:"certificate"`
	WhatYouWillLearn []string         `json:"whatYouWillLearn"`
	Prerequisites    []string         `json:"prerequisites"`
	Curriculum       []CurriculumWeek `json:"curriculum"`
}

type PackageService struct {
	ProductID string `json:"productId,omitempty"`
	Name      string `json:"name"`
}

type Package struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         float64          `json:"price"`
	OriginalPrice float64          `json:"originalPrice"`
	Image         string           `json:"image"`
	Services      []PackageService `json:"services"`
	Duration      string           `json:"duration"`
}

type Banner struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Section    string `json:"section"`
	NavigateTo string `json:"navigateTo"`
	Title      string `json:"title"`
}

// Enrollment keeps the field names of the enrolledCourses cache.
type Enrollment struct {
	UserID         string `json:"userId"`
	CourseID       string `json:"courseId"`
	UserName       string `json:"userName,omitempty"`
	UserEmail      string `json:"userEmail,omitempty"`
	CourseName     string `json:"courseName"`
	CoursePrice    string `json:"coursePrice"`
	CourseCategory string `json:"courseCategory"`
	CourseDuration string `json:"courseDuration"`
	CourseImage    string `json:"courseImage"`
	EnrollmentDate string `json:"enrollmentDate"`
	PaymentStatus  string `json:"paymentStatus"`
	Progress       int    `json:"progress"`
	Status         string `json:"status"`
}

type ReferralStatus struct {
	ReferralCode        string `json:"referralCode"`
	TotalReferrals      int    `json:"totalReferrals"`
	SuccessfulReferrals int    `json:"successfulReferrals"`
	CoinsEarned         int    `json:"coinsEarned"`
	PendingCoins        int    `json:"pendingCoins"`
}
