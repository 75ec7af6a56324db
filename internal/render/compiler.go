package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCompiler is the typesetting binary used when none is configured.
const DefaultCompiler = "pdflatex"

// outputTailLines is how much compiler output is kept in errors.
const outputTailLines = 20

// Compiler turns a LaTeX source file into a finished document.
type Compiler interface {
	// Compile typesets texPath and returns the path of the produced document,
	// written next to the source.
	Compile(ctx context.Context, texPath string) (string, error)
}

// LatexCompiler runs a pdflatex-compatible binary.
type LatexCompiler struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewLatexCompiler creates a compiler for binary. A zero timeout disables the deadline.
func NewLatexCompiler(binary string, timeout time.Duration, logger *slog.Logger) *LatexCompiler {
	if binary == "" {
		binary = DefaultCompiler
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LatexCompiler{
		binary:  binary,
		timeout: timeout,
		logger:  logger.With("component", "latex_compiler"),
	}
}

// Available reports whether the compiler binary can be found on PATH.
func (c *LatexCompiler) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// Compile implements Compiler.
func (c *LatexCompiler) Compile(ctx context.Context, texPath string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	texPath, err := filepath.Abs(texPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	dir := filepath.Dir(texPath)
	cmd := exec.CommandContext(ctx, c.binary,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", dir,
		texPath,
	)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	c.logger.DebugContext(ctx, "running typesetting tool",
		"binary", c.binary,
		"source", texPath)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %w\n%s", ErrCompileFailed, c.binary, err, tail(output.String(), outputTailLines))
	}

	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	c.logger.InfoContext(ctx, "document compiled",
		"output", pdfPath,
		"duration_ms", time.Since(start).Milliseconds())

	return pdfPath, nil
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
