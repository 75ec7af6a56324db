package generation

import (
	"github.com/phrazzld/mathsheet/internal/domain"
)

// Assembler fills a worksheet grid with independently generated problems.
// Duplicate problems are allowed.
type Assembler struct {
	gen *Generator
}

// NewAssembler creates an Assembler that draws problems from gen.
func NewAssembler(gen *Generator) *Assembler {
	return &Assembler{gen: gen}
}

// Assemble generates a full 5x4 worksheet from the given operation tokens.
func (a *Assembler) Assemble(tokens []string) (*domain.Worksheet, error) {
	if len(tokens) == 0 {
		return nil, ErrNoOperations
	}

	rows := make([][]domain.Problem, domain.WorksheetRows)
	for i := range rows {
		row := make([]domain.Problem, domain.ProblemsPerRow)
		for j := range row {
			p, err := a.gen.RandomProblem(tokens)
			if err != nil {
				return nil, err
			}
			row[j] = p
		}
		rows[i] = row
	}

	return domain.NewWorksheet(
		a.gen.Digits(),
		domain.ResolveOperations(tokens),
		a.gen.LimitMultiplication(),
		a.gen.Seed(),
		rows,
	)
}
