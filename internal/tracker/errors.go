// Package tracker holds what the tracker's domain packages share: user-facing validation errors
// and the JSON error responses the handlers write.
package tracker

import (
	"errors"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/pkg"
)

// ValidationError carries a message meant for the user, not for logs.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError reports whether err wraps a ValidationError and returns it.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// WriteValidationError writes a 400 with the user-facing message when err is a ValidationError.
func WriteValidationError(w http.ResponseWriter, err error) bool {
	validationErr, ok := AsValidationError(err)
	if !ok {
		return false
	}
	pkg.WriteMessage(w, validationErr.Message, http.StatusBadRequest)
	return true
}
