// internal/application/errors.go
package application

import "errors"

type Reason string

const (
	ReasonCartEmpty          Reason = "cart_empty"
	ReasonScheduleMissing    Reason = "schedule_missing"
	ReasonAddressIncomplete  Reason = "address_incomplete"
	ReasonLoginRequired      Reason = "login_required"
	ReasonInvalidServiceType Reason = "invalid_service_type"
)

const (
	ErrMsgCartEmpty          = "Please add items to your cart before checkout."
	ErrMsgScheduleMissing    = "Please select a date and time slot."
	ErrMsgAddressIncomplete  = "Please fill in your delivery address."
	ErrMsgLoginRequired      = "Please login to place an order."
	ErrMsgInvalidServiceType = "Service type must be home or clinic."
	ErrMsgOrderFailed        = "Could not place your order. Please try again."
)

// ValidationError is a user-input problem found before any network call.
type ValidationError struct {
	Reason  Reason
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(reason Reason, message string, fields ...string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message, Fields: fields}
}

// SubmissionError is a failed order submission. The checkout stays
// editable and can be resubmitted.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

var (
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrAlreadyConfirmed   = errors.New("order already placed")
	ErrLoginRequired      = errors.New("login required")
	ErrProductWithoutID   = errors.New("product has no id and cannot be added to the cart")
)

// ReasonOf extracts the validation reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason, true
	}
	return "", false
}
