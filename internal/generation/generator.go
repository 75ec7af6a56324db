package generation

import (
	"fmt"

	"github.com/phrazzld/mathsheet/internal/domain"
)

// TimesTableMax bounds both operands of a limited multiplication problem.
const TimesTableMax = 12

// Generator draws operands for single problems.
type Generator struct {
	src                 Source
	digits              int
	maxOperand          int
	limitMultiplication bool
}

// NewGenerator creates a Generator for operands of up to digits digits.
// With limitMultiplication set, multiplication operands stay within the
// 0-12 times tables regardless of digits.
func NewGenerator(src Source, digits int, limitMultiplication bool) (*Generator, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidConfig)
	}
	if err := domain.ValidateDigits(digits); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Generator{
		src:                 src,
		digits:              digits,
		maxOperand:          MaxOperand(digits),
		limitMultiplication: limitMultiplication,
	}, nil
}

// MaxOperand returns the largest number with the given count of digits.
func MaxOperand(digits int) int {
	n := 1
	for range digits {
		n *= 10
	}
	return n - 1
}

// Digits returns the digit width problems are generated for.
func (g *Generator) Digits() int {
	return g.digits
}

// LimitMultiplication reports whether multiplication is limited to the times tables.
func (g *Generator) LimitMultiplication() bool {
	return g.limitMultiplication
}

// Seed returns the seed of the generator's source, or zero when the source
// is not a Seeder.
func (g *Generator) Seed() uint64 {
	if s, ok := g.src.(Seeder); ok {
		return s.Seed()
	}
	return 0
}

// Problem generates a problem for op. Operations that are not one of the four
// canonical ones get addition-style operands and keep their symbol.
func (g *Generator) Problem(op domain.Operation) domain.Problem {
	p := domain.Problem{Operation: op}

	switch op {
	case domain.Subtract:
		p.Operand1 = g.src.IntRange(0, g.maxOperand)
		p.Operand2 = g.src.IntRange(0, g.maxOperand)
		if p.Operand1 < p.Operand2 {
			p.Operand1, p.Operand2 = p.Operand2, p.Operand1
		}
	case domain.Multiply:
		limit := g.maxOperand
		if g.limitMultiplication {
			limit = TimesTableMax
		}
		p.Operand1 = g.src.IntRange(0, limit)
		p.Operand2 = g.src.IntRange(0, limit)
	case domain.Divide:
		// Zero is excluded so the divisor set is never empty.
		dividend := g.src.IntRange(1, g.maxOperand)
		factors := Factors(dividend)
		p.Operand1 = dividend
		p.Operand2 = factors[g.src.IntRange(0, len(factors)-1)]
	default:
		p.Operand1 = g.src.IntRange(0, g.maxOperand)
		p.Operand2 = g.src.IntRange(0, g.maxOperand)
	}

	return p
}

// RandomProblem picks one of tokens uniformly, resolves it to an operation and
// generates a problem for it.
func (g *Generator) RandomProblem(tokens []string) (domain.Problem, error) {
	if len(tokens) == 0 {
		return domain.Problem{}, ErrNoOperations
	}
	token := tokens[g.src.IntRange(0, len(tokens)-1)]
	return g.Problem(domain.ResolveOperation(token)), nil
}
