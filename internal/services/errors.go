package services

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that an identifier or filter matched no record where
// the operation contract requires at least one.
var ErrNotFound = errors.New("record not found")

// ErrInvalidArgument signals a structurally valid request with an
// unacceptable value, such as an unknown pollutant name or a comparison with
// fewer than two regions.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports malformed or out-of-bound input on create, or a
// structurally invalid query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
