package domain

// Operation identifies an arithmetic operation by its canonical LaTeX symbol.
// Values outside the four canonical symbols are allowed and are rendered verbatim.
type Operation string

// Canonical operations.
const (
	Add      Operation = "+"
	Subtract Operation = "-"
	Multiply Operation = `\times`
	Divide   Operation = `\div`
)

// DefaultOperations is the operation set used when none is configured.
var DefaultOperations = []string{string(Add), string(Subtract)}

// operationAliases maps every accepted token to its canonical operation.
// Matching is case-sensitive.
var operationAliases = map[string]Operation{
	"add":      Add,
	"addition": Add,
	"plus":     Add,

	"sub":         Subtract,
	"subtract":    Subtract,
	"subtraction": Subtract,
	"minus":       Subtract,

	"multiply":       Multiply,
	"multiplication": Multiply,
	"times":          Multiply,
	"x":              Multiply,

	"div":      Divide,
	"divide":   Divide,
	"division": Divide,
	`\`:        Divide,
}

// ResolveOperation maps a user token (name, alias or symbol) to its canonical
// operation. Unknown tokens are returned unchanged, so resolving an already
// canonical symbol is a no-op.
func ResolveOperation(token string) Operation {
	if op, ok := operationAliases[token]; ok {
		return op
	}
	return Operation(token)
}

// ResolveOperations resolves every token in order.
func ResolveOperations(tokens []string) []Operation {
	ops := make([]Operation, len(tokens))
	for i, t := range tokens {
		ops[i] = ResolveOperation(t)
	}
	return ops
}

// Known reports whether op is one of the four canonical operations.
func (op Operation) Known() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Name returns a readable name for canonical operations and the raw token otherwise.
func (op Operation) Name() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	}
	return string(op)
}

func (op Operation) String() string {
	return string(op)
}
