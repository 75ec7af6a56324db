package domain

// Problem is a single two-operand arithmetic exercise.
type Problem struct {
	Operand1  int       `json:"operand1" yaml:"operand1"`
	Operand2  int       `json:"operand2" yaml:"operand2"`
	Operation Operation `json:"operation" yaml:"operation"`
}

// NewProblem creates a Problem and checks the operation-specific invariants.
func NewProblem(op Operation, operand1, operand2 int) (Problem, error) {
	p := Problem{Operand1: operand1, Operand2: operand2, Operation: op}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Validate checks operand sign and the constraints of subtraction and division.
// Pass-through operations only need non-negative operands.
func (p Problem) Validate() error {
	if p.Operand1 < 0 || p.Operand2 < 0 {
		return NewValidationError("operands", "must be non-negative", ErrNegativeOperand)
	}

	switch p.Operation {
	case Subtract:
		if p.Operand1 < p.Operand2 {
			return NewValidationError("operand1", "must not be less than operand2", ErrNegativeDifference)
		}
	case Divide:
		if p.Operand2 == 0 || p.Operand1%p.Operand2 != 0 {
			return NewValidationError("operand2", "must divide operand1 exactly", ErrInexactDivision)
		}
	}

	return nil
}

// Answer returns the result of the problem. ok is false for operations the
// generator does not know how to evaluate.
func (p Problem) Answer() (answer int, ok bool) {
	switch p.Operation {
	case Add:
		return p.Operand1 + p.Operand2, true
	case Subtract:
		return p.Operand1 - p.Operand2, true
	case Multiply:
		return p.Operand1 * p.Operand2, true
	case Divide:
		if p.Operand2 == 0 {
			return 0, false
		}
		return p.Operand1 / p.Operand2, true
	}
	return 0, false
}
