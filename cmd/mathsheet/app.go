package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/render"
	"github.com/phrazzld/mathsheet/internal/service"
)

// application holds the dependencies shared by all commands.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	compiler         *render.LatexCompiler
	worksheetService service.WorksheetService
}

// newApplication wires the template, compiler and worksheet service from cfg.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := render.LoadTemplate(cfg.Render.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	compiler := render.NewLatexCompiler(cfg.Render.Compiler, cfg.Render.CompileTimeout, logger)
	if !compiler.Available() {
		logger.Warn("typesetting tool not found on PATH; PDF output is unavailable",
			"compiler", cfg.Render.Compiler)
	}

	logger.Debug("application initialized",
		"template", tmpl.Name(),
		"compiler", cfg.Render.Compiler,
		"compile_timeout", cfg.Render.CompileTimeout)

	return &application{
		config:           cfg,
		logger:           logger,
		compiler:         compiler,
		worksheetService: service.NewWorksheetService(tmpl, compiler, logger),
	}, nil
}
