package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/latex"
	"github.com/phrazzld/mathsheet/internal/platform/logger"
	"github.com/phrazzld/mathsheet/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeCompiler records the sources it was asked to compile and writes an
// empty pdf next to them unless err is set.
type fakeCompiler struct {
	sources []string
	err     error
}

func (c *fakeCompiler) Compile(_ context.Context, texPath string) (string, error) {
	c.sources = append(c.sources, texPath)
	if c.err != nil {
		return "", c.err
	}
	pdf := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	return pdf, os.WriteFile(pdf, []byte("%PDF-1.5"), 0o644)
}

func newTestService(t *testing.T, compiler render.Compiler) (WorksheetService, *logger.TestLogBuffer) {
	t.Helper()
	l, buf := logger.GetTestLogger(t)
	return NewWorksheetService(nil, compiler, l), buf
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	svc, buf := newTestService(t, nil)

	ws, err := svc.Generate(context.Background(), Request{
		Digits:              2,
		Operations:          []string{"plus", "minus"},
		LimitMultiplication: true,
		Seed:                17,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ws.Digits)
	assert.Equal(t, uint64(17), ws.Seed)
	assert.Len(t, ws.Problems(), domain.ProblemsPerSheet)
	for _, p := range ws.Problems() {
		assert.Contains(t, []domain.Operation{domain.Add, domain.Subtract}, p.Operation)
	}
	logger.AssertLogField(t, buf, "msg", "worksheet generated")
}

func TestGenerateSameSeedSameProblems(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	req := Request{Digits: 3, Operations: []string{"+", "-", "x", "div"}, LimitMultiplication: true, Seed: 5}

	a, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
}

func TestGenerateValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)

	_, err := svc.Generate(context.Background(), Request{Digits: 0, Operations: []string{"+"}})
	assert.ErrorIs(t, err, domain.ErrInvalidDigits)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Generate(context.Background(), Request{Digits: 2})
	assert.ErrorIs(t, err, domain.ErrNoOperations)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateUnknownOperationPassesThrough(t *testing.T) {
	t.Parallel()

	svc, buf := newTestService(t, nil)

	ws, err := svc.Generate(context.Background(), Request{Digits: 1, Operations: []string{"mod"}, Seed: 3})
	require.NoError(t, err)

	for _, p := range ws.Problems() {
		assert.Equal(t, domain.Operation("mod"), p.Operation)
	}
	logger.AssertLogContains(t, buf, "unknown operation passed through to worksheet")
	logger.AssertLogField(t, buf, "operation", "mod")
}

func TestDocument(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	ws, err := svc.Generate(context.Background(), Request{Digits: 2, Operations: []string{"times"}, Seed: 11})
	require.NoError(t, err)

	doc, err := svc.Document(context.Background(), ws)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, `\documentclass`))
	assert.Contains(t, doc, latex.Grid(ws))
	assert.Contains(t, doc, `\end{document}`)
	assert.Contains(t, doc, `\textbf{2-digit practice:} $\times$`)
}

func TestDocumentCustomTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := render.ParseTemplate("custom", `((* .digits *)) | ((* .operations *))`)
	require.NoError(t, err)

	l, _ := logger.GetTestLogger(t)
	svc := NewWorksheetService(tmpl, nil, l)

	ws, err := svc.Generate(context.Background(), Request{Digits: 4, Operations: []string{"plus", "div"}, Seed: 1})
	require.NoError(t, err)

	doc, err := svc.Document(context.Background(), ws)
	require.NoError(t, err)
	assert.Equal(t, `4 | +, \div`, doc)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{}
	svc, _ := newTestService(t, compiler)
	dir := filepath.Join(t.TempDir(), "out")

	result, err := svc.Build(context.Background(),
		RequestFromConfig(config.WorksheetConfig{
			Digits:              3,
			Operations:          []string{"+", "-"},
			LimitMultiplication: true,
			Seed:                8,
		}),
		BuildOptions{OutputDir: dir, Name: "worksheet", Compile: true, AnswerKey: true},
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "worksheet.tex"), result.SourcePath)
	assert.Equal(t, filepath.Join(dir, "worksheet.pdf"), result.PDFPath)
	assert.Equal(t, filepath.Join(dir, "worksheet.answers.yaml"), result.AnswerKeyPath)
	assert.Equal(t, []string{result.SourcePath}, compiler.sources)

	source, err := os.ReadFile(result.SourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(source), latex.Grid(result.Worksheet))

	data, err := os.ReadFile(result.AnswerKeyPath)
	require.NoError(t, err)

	var key struct {
		Worksheet string `yaml:"worksheet"`
		Seed      uint64 `yaml:"seed"`
		Rows      [][]struct {
			Operand1  int    `yaml:"operand1"`
			Operand2  int    `yaml:"operand2"`
			Operation string `yaml:"operation"`
			Answer    *int   `yaml:"answer"`
		} `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(data, &key))
	assert.Equal(t, result.Worksheet.ID.String(), key.Worksheet)
	assert.Equal(t, uint64(8), key.Seed)
	require.Len(t, key.Rows, domain.WorksheetRows)

	first := result.Worksheet.Rows[0][0]
	expected, _ := first.Answer()
	assert.Equal(t, first.Operand1, key.Rows[0][0].Operand1)
	require.NotNil(t, key.Rows[0][0].Answer)
	assert.Equal(t, expected, *key.Rows[0][0].Answer)
}

func TestBuildWithoutCompile(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{}
	svc, _ := newTestService(t, compiler)

	result, err := svc.Build(context.Background(),
		Request{Digits: 1, Operations: []string{"+"}},
		BuildOptions{OutputDir: t.TempDir(), Name: "practice"},
	)
	require.NoError(t, err)

	assert.FileExists(t, result.SourcePath)
	assert.Empty(t, result.PDFPath)
	assert.Empty(t, result.AnswerKeyPath)
	assert.Empty(t, compiler.sources)
}

func TestBuildCompileFailure(t *testing.T) {
	t.Parallel()

	compileErr := errors.Join(render.ErrCompileFailed, errors.New("pdflatex: exit status 1"))
	svc, buf := newTestService(t, &fakeCompiler{err: compileErr})

	result, err := svc.Build(context.Background(),
		Request{Digits: 1, Operations: []string{"+"}},
		BuildOptions{OutputDir: t.TempDir(), Name: "worksheet", Compile: true},
	)
	require.ErrorIs(t, err, render.ErrCompileFailed)
	require.NotNil(t, result, "the source is still reported when compilation fails")
	assert.FileExists(t, result.SourcePath)
	logger.AssertLogContains(t, buf, "worksheet compilation failed")
}

func TestBuildWithoutCompiler(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	_, err := svc.Build(context.Background(),
		Request{Digits: 1, Operations: []string{"+"}},
		BuildOptions{OutputDir: t.TempDir(), Name: "worksheet", Compile: true},
	)
	assert.ErrorIs(t, err, render.ErrCompileFailed)
}

func TestBuildOutputError(t *testing.T) {
	t.Parallel()

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	svc, _ := newTestService(t, nil)
	_, err := svc.Build(context.Background(),
		Request{Digits: 1, Operations: []string{"+"}},
		BuildOptions{OutputDir: filepath.Join(blocker, "sub"), Name: "worksheet"},
	)
	assert.ErrorIs(t, err, ErrOutput)
}
