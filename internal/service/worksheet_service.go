package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/generation"
	"github.com/phrazzld/mathsheet/internal/latex"
	"github.com/phrazzld/mathsheet/internal/platform/logger"
	"github.com/phrazzld/mathsheet/internal/redact"
	"github.com/phrazzld/mathsheet/internal/render"
	"gopkg.in/yaml.v3"
)

// Request describes one worksheet to generate.
type Request struct {
	Digits              int
	Operations          []string
	LimitMultiplication bool
	// Seed reproduces a previous worksheet. Zero picks a random seed.
	Seed uint64
}

// RequestFromConfig builds a Request from the worksheet configuration.
func RequestFromConfig(cfg config.WorksheetConfig) Request {
	return Request{
		Digits:              cfg.Digits,
		Operations:          cfg.Operations,
		LimitMultiplication: cfg.LimitMultiplication,
		Seed:                cfg.Seed,
	}
}

// BuildOptions controls which artifacts Build writes.
type BuildOptions struct {
	OutputDir string
	Name      string
	Compile   bool
	AnswerKey bool
}

// BuildResult lists the artifacts written by Build. Paths of skipped
// artifacts are empty.
type BuildResult struct {
	Worksheet     *domain.Worksheet
	SourcePath    string
	PDFPath       string
	AnswerKeyPath string
}

// WorksheetService generates worksheets and renders them into documents.
type WorksheetService interface {
	// Generate creates a new worksheet for req.
	Generate(ctx context.Context, req Request) (*domain.Worksheet, error)

	// Document renders ws into a complete LaTeX document.
	Document(ctx context.Context, ws *domain.Worksheet) (string, error)

	// Build generates a worksheet and writes its document, and optionally its
	// compiled form and answer key, to opts.OutputDir.
	Build(ctx context.Context, req Request, opts BuildOptions) (*BuildResult, error)
}

// worksheetServiceImpl implements WorksheetService
type worksheetServiceImpl struct {
	template *render.Template
	compiler render.Compiler
	logger   *slog.Logger
}

// NewWorksheetService creates a WorksheetService. A nil template selects the
// built-in one; compiler may be nil when documents are never compiled.
func NewWorksheetService(template *render.Template, compiler render.Compiler, logger *slog.Logger) WorksheetService {
	if template == nil {
		template = render.DefaultTemplate()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &worksheetServiceImpl{
		template: template,
		compiler: compiler,
		logger:   logger.With("component", "worksheet_service"),
	}
}

// Generate implements WorksheetService.Generate
func (s *worksheetServiceImpl) Generate(ctx context.Context, req Request) (*domain.Worksheet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateDigits(req.Digits); err != nil {
		return nil, err
	}
	if len(req.Operations) == 0 {
		return nil, domain.NewValidationError("operations", "cannot be empty", domain.ErrNoOperations)
	}

	for _, token := range req.Operations {
		if op := domain.ResolveOperation(token); !op.Known() {
			log.WarnContext(ctx, "unknown operation passed through to worksheet",
				"operation", token)
		}
	}

	src := generation.NewSource(req.Seed)
	gen, err := generation.NewGenerator(src, req.Digits, req.LimitMultiplication)
	if err != nil {
		return nil, err
	}

	ws, err := generation.NewAssembler(gen).Assemble(req.Operations)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble worksheet: %w", err)
	}

	log.InfoContext(ctx, "worksheet generated",
		"worksheet_id", ws.ID,
		"digits", ws.Digits,
		"operations", strings.Join(req.Operations, ","),
		"limit_multiplication", ws.LimitMultiplication,
		"seed", ws.Seed)

	return ws, nil
}

// Document implements WorksheetService.Document
func (s *worksheetServiceImpl) Document(ctx context.Context, ws *domain.Worksheet) (string, error) {
	symbols := make([]string, len(ws.Operations))
	for i, op := range ws.Operations {
		symbols[i] = string(op)
	}

	doc, err := s.template.Render(map[string]string{
		render.SlotProblems:   latex.Grid(ws),
		render.SlotDigits:     strconv.Itoa(ws.Digits),
		render.SlotOperations: strings.Join(symbols, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render worksheet %s: %w", ws.ID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "worksheet document rendered",
		"worksheet_id", ws.ID,
		"template", s.template.Name(),
		"bytes", len(doc))

	return doc, nil
}

// Build implements WorksheetService.Build
func (s *worksheetServiceImpl) Build(ctx context.Context, req Request, opts BuildOptions) (*BuildResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := s.Document(ctx, ws)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	result := &BuildResult{
		Worksheet:  ws,
		SourcePath: filepath.Join(opts.OutputDir, opts.Name+".tex"),
	}

	if err := os.WriteFile(result.SourcePath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	log.InfoContext(ctx, "worksheet source written", "path", result.SourcePath)

	if opts.AnswerKey {
		result.AnswerKeyPath = filepath.Join(opts.OutputDir, opts.Name+".answers.yaml")
		if err := writeAnswerKey(result.AnswerKeyPath, ws); err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "answer key written", "path", result.AnswerKeyPath)
	}

	if opts.Compile {
		if s.compiler == nil {
			return nil, fmt.Errorf("%w: no compiler configured", render.ErrCompileFailed)
		}
		pdfPath, err := s.compiler.Compile(ctx, result.SourcePath)
		if err != nil {
			log.ErrorContext(ctx, "worksheet compilation failed",
				"worksheet_id", ws.ID,
				"source", result.SourcePath,
				"error", redact.Error(err))
			return result, err
		}
		result.PDFPath = pdfPath
	}

	return result, nil
}

// answerKeyFile is the YAML layout of an answer key.
type answerKeyFile struct {
	Worksheet string                    `yaml:"worksheet"`
	Seed      uint64                    `yaml:"seed"`
	Digits    int                       `yaml:"digits"`
	Rows      [][]domain.AnswerKeyEntry `yaml:"rows"`
}

func writeAnswerKey(path string, ws *domain.Worksheet) error {
	data, err := yaml.Marshal(answerKeyFile{
		Worksheet: ws.ID.String(),
		Seed:      ws.Seed,
		Digits:    ws.Digits,
		Rows:      ws.AnswerKey(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode answer key: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}
