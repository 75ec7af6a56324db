package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// runCommand executes the root command with args and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestApplication(t *testing.T) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", LogFormat: "json"},
		Worksheet: config.WorksheetConfig{
			Digits:              3,
			Operations:          []string{"+", "-"},
			LimitMultiplication: true,
		},
		Render: config.RenderConfig{
			OutputDir:      t.TempDir(),
			OutputName:     "worksheet",
			Compiler:       "mathsheet-test-no-such-compiler",
			CompileTimeout: time.Second,
		},
	}
	app, err := newApplication(cfg, log)
	require.NoError(t, err)
	return app
}

func TestGenerateCommandWritesSourceAndAnswers(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "generate",
		"--digits", "2",
		"--ops", "plus,times,divide",
		"--seed", "42",
		"--out-dir", dir,
		"--name", "practice",
		"--compile=false",
		"--answers",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "seed: 42")
	assert.Contains(t, out, filepath.Join(dir, "practice.tex"))
	assert.Contains(t, out, filepath.Join(dir, "practice.answers.yaml"))
	assert.NotContains(t, out, ".pdf")

	doc, err := os.ReadFile(filepath.Join(dir, "practice.tex"))
	require.NoError(t, err)
	assert.Equal(t, domain.ProblemsPerSheet, strings.Count(string(doc), `\begin{myequation}`))

	data, err := os.ReadFile(filepath.Join(dir, "practice.answers.yaml"))
	require.NoError(t, err)
	var key struct {
		Seed   uint64                    `yaml:"seed"`
		Digits int                       `yaml:"digits"`
		Rows   [][]domain.AnswerKeyEntry `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(data, &key))
	assert.Equal(t, uint64(42), key.Seed)
	assert.Equal(t, 2, key.Digits)
	assert.Len(t, key.Rows, domain.WorksheetRows)

	// The same seed writes the same document.
	dir2 := t.TempDir()
	_, err = runCommand(t, "generate", "--digits", "2", "--ops", "plus,times,divide",
		"--seed", "42", "--out-dir", dir2, "--name", "practice", "--compile=false")
	require.NoError(t, err)
	doc2, err := os.ReadFile(filepath.Join(dir2, "practice.tex"))
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(doc2))
}

func TestGenerateCommandCompileFailure(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "generate",
		"--out-dir", dir,
		"--seed", "7",
		"--compiler", "mathsheet-test-no-such-compiler",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate worksheet")

	// The source is still written so it can be compiled by hand.
	assert.Contains(t, out, filepath.Join(dir, "worksheet.tex"))
	assert.FileExists(t, filepath.Join(dir, "worksheet.tex"))
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	_, err := runCommand(t, "generate", "--digits", "12", "--compile=false", "--out-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	t.Setenv("MATHSHEET_SERVER_LOG_LEVEL", "loud")
	_, err = runCommand(t, "generate", "--compile=false", "--out-dir", t.TempDir())
	require.Error(t, err)
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "mathsheet.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
worksheet:
  digits: 1
  operations: [times]
  seed: 99
render:
  compile: false
  output_name: fromfile
`), 0o644))

	out, err := runCommand(t, "generate", "--config", configPath, "--out-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 99")
	assert.FileExists(t, filepath.Join(dir, "fromfile.tex"))
}

func TestNewApplicationMissingTemplate(t *testing.T) {
	cfg := &config.Config{Render: config.RenderConfig{TemplatePath: filepath.Join(t.TempDir(), "missing.tex")}}
	_, err := newApplication(cfg, nil)
	assert.ErrorContains(t, err, "failed to load template")
}

func TestRouter(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		contentType    string
	}{
		{"health", "/health", http.StatusOK, ""},
		{"worksheet json", "/api/worksheets?seed=3", http.StatusOK, "application/json"},
		{"worksheet json trailing slash", "/api/worksheets/?seed=3", http.StatusOK, "application/json"},
		{"worksheet source", "/api/worksheets/source?digits=4", http.StatusOK, "text/x-tex; charset=utf-8"},
		{"invalid digits", "/api/worksheets?digits=0", http.StatusBadRequest, "application/json"},
		{"pdf without compiler", "/api/worksheets/pdf", http.StatusBadGateway, "application/json"},
		{"unknown route", "/api/cards", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.contentType != "" {
				assert.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestStartHTTPServerGracefulShutdown(t *testing.T) {
	app := newTestApplication(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, ln) }()

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "OK", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
