package render

import "errors"

var (
	// ErrTemplate is returned when a template cannot be parsed or executed.
	ErrTemplate = errors.New("invalid document template")

	// ErrCompileFailed is returned when the typesetting tool is missing or exits with an error.
	ErrCompileFailed = errors.New("document compilation failed")
)
