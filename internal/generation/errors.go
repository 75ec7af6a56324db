package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrNoOperations is returned when a random problem is requested from an empty operation set
	ErrNoOperations = errors.New("no operations to choose from")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
