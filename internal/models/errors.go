package models

import "errors"

// ErrNotFound is returned when no item has the requested id
var ErrNotFound = errors.New("item not found")

// ValidationError reports caller-supplied data that fails a contract:
// a missing required field or an unparseable value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError for field
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
