package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a property id or slug matches no record.
	ErrNotFound = errors.New("property not found")
	// ErrPricingConflict guards the persistence layer against rows carrying
	// both a sale price and rental pricing at the same time.
	ErrPricingConflict = errors.New("price and rent/deposit are mutually exclusive")
)

// ValidationError reports a single bad input field. The first failing rule
// wins; callers never see more than one.
type ValidationError struct {
	Field   string
	Missing bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("invalid field: %s", e.Field)
}

// MissingField builds a ValidationError for an absent required field.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Missing: true}
}

// InvalidField builds a ValidationError for a present but unusable field.
func InvalidField(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// AsValidation returns the ValidationError wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
