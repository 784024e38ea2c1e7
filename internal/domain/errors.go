// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport failures: unreachable backend, open circuit,
// or a non-2xx answer without a parseable body.
var ErrNetwork = errors.New("network error")

var ErrNotFound = errors.New("not found")

// RejectionError is an explicit failure answered by the backend.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request with status %d", e.Status)
	}
	return e.Message
}
