package domain

import (
	"time"

	"github.com/google/uuid"
)

// Worksheet layout. The grid size is fixed.
const (
	WorksheetRows    = 5
	ProblemsPerRow   = 4
	ProblemsPerSheet = WorksheetRows * ProblemsPerRow

	MinDigits = 1
	MaxDigits = 9
)

// Worksheet is a generated grid of problems. It is built once and never mutated.
type Worksheet struct {
	ID                  uuid.UUID   `json:"id"`
	Digits              int         `json:"digits"`
	Operations          []Operation `json:"operations"`
	LimitMultiplication bool        `json:"limit_multiplication"`
	Seed                uint64      `json:"seed"`
	Rows                [][]Problem `json:"rows"`
	CreatedAt           time.Time   `json:"created_at"`
}

// NewWorksheet creates a Worksheet from the given rows and validates its shape.
func NewWorksheet(digits int, ops []Operation, limitMultiplication bool, seed uint64, rows [][]Problem) (*Worksheet, error) {
	ws := &Worksheet{
		ID:                  uuid.New(),
		Digits:              digits,
		Operations:          ops,
		LimitMultiplication: limitMultiplication,
		Seed:                seed,
		Rows:                rows,
		CreatedAt:           time.Now().UTC(),
	}

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	return ws, nil
}

// ValidateDigits checks that a digit width is within the supported range.
func ValidateDigits(digits int) error {
	if digits < MinDigits || digits > MaxDigits {
		return NewValidationError("digits", "must be between 1 and 9", ErrInvalidDigits)
	}
	return nil
}

// Validate checks the grid shape and every problem on it.
func (w *Worksheet) Validate() error {
	if err := ValidateDigits(w.Digits); err != nil {
		return err
	}

	if len(w.Operations) == 0 {
		return NewValidationError("operations", "cannot be empty", ErrNoOperations)
	}

	if len(w.Rows) != WorksheetRows {
		return NewValidationError("rows", "must contain 5 rows", ErrInvalidGrid)
	}

	for _, row := range w.Rows {
		if len(row) != ProblemsPerRow {
			return NewValidationError("rows", "must contain 4 problems each", ErrInvalidGrid)
		}
		for _, p := range row {
			if err := p.Validate(); err != nil {
				return err
			}
		}
	}

	return nil
}

// Problems returns the problems in reading order.
func (w *Worksheet) Problems() []Problem {
	problems := make([]Problem, 0, ProblemsPerSheet)
	for _, row := range w.Rows {
		problems = append(problems, row...)
	}
	return problems
}

// AnswerKeyEntry is one solved problem of an answer key.
type AnswerKeyEntry struct {
	Problem `yaml:",inline"`
	Answer  *int `json:"answer" yaml:"answer"`
}

// AnswerKey returns the solved problems row by row. Problems with an
// unknown operation have a nil answer.
func (w *Worksheet) AnswerKey() [][]AnswerKeyEntry {
	key := make([][]AnswerKeyEntry, len(w.Rows))
	for i, row := range w.Rows {
		key[i] = make([]AnswerKeyEntry, len(row))
		for j, p := range row {
			entry := AnswerKeyEntry{Problem: p}
			if answer, ok := p.Answer(); ok {
				entry.Answer = &answer
			}
			key[i][j] = entry
		}
	}
	return key
}
