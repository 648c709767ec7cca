package brands

import "fmt"

// ValidationError represents a client-detected invalid list request.
// It is surfaced before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a brand list validation error.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
