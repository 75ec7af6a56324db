package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Slot names understood by the default template.
const (
	SlotProblems   = "problems"
	SlotDigits     = "digits"
	SlotOperations = "operations"
)

// Template delimiters. Braces and dollar signs are everywhere in LaTeX, so
// slots use ((* name *)) instead.
const (
	leftDelim  = "((*"
	rightDelim = "*))"
)

//go:embed templates/worksheet.tex.tmpl
var defaultTemplate string

// Template is a parsed document template with named slots, written as
// ((* .name *)). Text outside slots is copied verbatim.
type Template struct {
	name string
	tmpl *template.Template
}

// ParseTemplate parses text as a document template.
func ParseTemplate(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// DefaultTemplate returns the built-in worksheet template.
func DefaultTemplate() *Template {
	t, err := ParseTemplate("worksheet.tex", defaultTemplate)
	if err != nil {
		panic(err) // embedded template is known to parse
	}
	return t
}

// LoadTemplate reads a template from path. An empty path selects the default template.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	return ParseTemplate(path, string(data))
}

// Name returns the template name, the file path for loaded templates.
func (t *Template) Name() string {
	return t.name
}

// Render fills the template slots. Every slot referenced by the template must be present.
func (t *Template) Render(slots map[string]string) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, slots); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return b.String(), nil
}
