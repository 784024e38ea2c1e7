// internal/domain/models.go
package domain

type ServiceType string

const (
	ServiceHome   ServiceType = "home"
	ServiceClinic ServiceType = "clinic"
)

func (s ServiceType) Valid() bool {
	return s == ServiceHome || s == ServiceClinic
}

// CartLineItem is one product entry in the cart, keyed by ProductID.
type CartLineItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"image,omitempty"`
}

type Cart struct {
	Items   []CartLineItem `json:"products"`
	OwnerID string         `json:"userId,omitempty"`
}

type UserProfile struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode"`
}

func (u UserProfile) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Registration is the sign-up form. ConfirmPassword is checked locally
// and never sent.
type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Age             string
	Gender          string
	ReferralCode    string
}

// AuthResult is the normalized answer of the login and register endpoints.
type AuthResult struct {
	Success bool
	Token   string
	User    *UserProfile
	Message string
}

type Address struct {
	FullName string `json:"fullName"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Phone    string `json:"phone"`
}

type Booking struct {
	ServiceType ServiceType `json:"serviceType"`
	Date        string      `json:"date"`
	TimeSlot    string      `json:"timeSlot"`
}

type OrderLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Amounts struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderSubmission is built once per checkout attempt and never mutated.
type OrderSubmission struct {
	UserID      string      `json:"userId"`
	Products    []OrderLine `json:"products"`
	Address     Address     `json:"address"`
	Booking     Booking     `json:"booking"`
	PaymentType string      `json:"paymentType"`
	Amounts     Amounts     `json:"amounts"`
	OrderID     string      `json:"orderId"`
}

type OrderReceipt struct {
	Success bool
	OrderID string
	Message string
}

type Order struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"orderId"`
	UserID      string      `json:"userId"`
	Products    []OrderLine `json:"products"`
	Address     Address     `json:"address"`
	Booking     Booking     `json:"booking"`
	PaymentType string      `json:"paymentType"`
	Amounts     Amounts     `json:"amounts"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

type UserBooking struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"orderId"`
	Booking   Booking     `json:"booking"`
	Products  []OrderLine `json:"products"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"createdAt"`
}
