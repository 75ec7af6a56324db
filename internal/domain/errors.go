package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDigits is returned when a digit width is outside the supported range.
	ErrInvalidDigits = errors.New("invalid digit width")

	// ErrNoOperations is returned when a worksheet is requested without any operation.
	ErrNoOperations = errors.New("at least one operation is required")

	// ErrNegativeOperand is returned when a problem carries a negative operand.
	ErrNegativeOperand = errors.New("operands must be non-negative")

	// ErrNegativeDifference is returned when a subtraction problem would go below zero.
	ErrNegativeDifference = errors.New("subtraction result must be non-negative")

	// ErrInexactDivision is returned when a division problem leaves a remainder
	// or divides by zero.
	ErrInexactDivision = errors.New("division must be exact and by a non-zero divisor")

	// ErrInvalidGrid is returned when a worksheet is not laid out as a full grid.
	ErrInvalidGrid = errors.New("worksheet grid has the wrong shape")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field that wraps err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap allows errors.Is to match both the wrapped cause and ErrValidation.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}
