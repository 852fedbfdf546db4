package core

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation = errors.New("validation failed")
)

// NewValidationError reports an invalid field of a domain record
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// IsValidationError reports whether err came from NewValidationError
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
