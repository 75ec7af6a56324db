package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to HTTP status codes.
var (
	// ErrOutput indicates that a generated artifact could not be written.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrOutput = errors.New("failed to write worksheet output")
)
