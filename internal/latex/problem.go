package latex

import (
	"fmt"

	"github.com/phrazzld/mathsheet/internal/domain"
)

const problemFormat = `\begin{myequation}
    \begin{array}{r}
        %s \\
        %s` + BlankDigit + `%s \\
        \hline\\
        \hline
    \end{array}
\end{myequation}`

// Problem renders p as a vertical equation: the first operand on top, the
// operation symbol flush left of the second operand, then a rule, a blank
// answer line and a closing rule.
func Problem(digits int, p domain.Problem) string {
	return fmt.Sprintf(problemFormat,
		Operand(digits, p.Operand1),
		p.Operation,
		Operand(digits, p.Operand2),
	)
}
