package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/generation"
	"github.com/phrazzld/mathsheet/internal/render"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDigits),
		errors.Is(err, domain.ErrNoOperations),
		errors.Is(err, generation.ErrNoOperations),
		errors.Is(err, generation.ErrInvalidConfig),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// The typesetting tool is an upstream dependency of the PDF endpoint
	case errors.Is(err, render.ErrCompileFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var domainErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	// Field and message of a domain validation error only describe the request
	case errors.As(err, &domainErr):
		return "Invalid request: " + domainErr.Error()

	case errors.Is(err, domain.ErrInvalidDigits):
		return fmt.Sprintf("Invalid digits: must be between %d and %d", domain.MinDigits, domain.MaxDigits)

	case errors.Is(err, domain.ErrNoOperations),
		errors.Is(err, generation.ErrNoOperations):
		return "At least one operation is required"

	case errors.Is(err, render.ErrCompileFailed):
		return "Worksheet compilation failed"

	case errors.Is(err, render.ErrTemplate):
		return "Worksheet template could not be rendered"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a user-friendly message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}

	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag(), fe.Param()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + param
	default:
		return "validation failed"
	}
}
