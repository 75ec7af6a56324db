package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/phrazzld/mathsheet/internal/api/shared"
	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/latex"
	"github.com/phrazzld/mathsheet/internal/platform/logger"
	"github.com/phrazzld/mathsheet/internal/service"
)

// Content types of the document endpoints.
const (
	ContentTypeTeX = "text/x-tex; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// SeedHeader carries the seed of a generated document so it can be reproduced.
const SeedHeader = "X-Worksheet-Seed"

// WorksheetQuery holds the query parameters shared by all worksheet endpoints.
// Absent parameters fall back to the configured worksheet defaults.
type WorksheetQuery struct {
	Digits              int      `query:"digits" validate:"min=1,max=9"`
	Operations          []string `query:"ops" validate:"min=1,max=16,dive,required,max=32"`
	LimitMultiplication bool     `query:"limit_multiplication"`
	Seed                uint64   `query:"seed"`
}

// ProblemResponse is a single problem with its rendered LaTeX.
type ProblemResponse struct {
	Operand1  int    `json:"operand1"`
	Operand2  int    `json:"operand2"`
	Operation string `json:"operation"`
	Answer    *int   `json:"answer,omitempty"`
	Latex     string `json:"latex"`
}

// WorksheetResponse represents the response data for a worksheet
type WorksheetResponse struct {
	ID                  string              `json:"id"`
	Digits              int                 `json:"digits"`
	Operations          []string            `json:"operations"`
	LimitMultiplication bool                `json:"limit_multiplication"`
	Seed                uint64              `json:"seed"`
	Rows                [][]ProblemResponse `json:"rows"`
	CreatedAt           time.Time           `json:"created_at"`
}

// WorksheetHandler handles worksheet-related HTTP requests
type WorksheetHandler struct {
	worksheetService service.WorksheetService
	defaults         config.WorksheetConfig
	logger           *slog.Logger
}

// NewWorksheetHandler creates a new WorksheetHandler. defaults supplies the
// values of query parameters a request leaves out.
func NewWorksheetHandler(
	worksheetService service.WorksheetService,
	defaults config.WorksheetConfig,
	logger *slog.Logger,
) *WorksheetHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &WorksheetHandler{
		worksheetService: worksheetService,
		defaults:         defaults,
		logger:           logger.With("component", "worksheet_handler"),
	}
}

// GetWorksheet handles GET /api/worksheets requests
func (h *WorksheetHandler) GetWorksheet(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.worksheetService.Generate(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, worksheetToResponse(ws))
}

// GetWorksheetSource handles GET /api/worksheets/source requests
func (h *WorksheetHandler) GetWorksheetSource(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.worksheetService.Generate(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	doc, err := h.worksheetService.Document(r.Context(), ws)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	w.Header().Set(SeedHeader, strconv.FormatUint(ws.Seed, 10))
	shared.RespondWithContent(w, r, http.StatusOK, ContentTypeTeX, "worksheet.tex", []byte(doc))
}

// GetWorksheetPDF handles GET /api/worksheets/pdf requests. The document is
// built and compiled in a temporary directory that is removed afterwards.
func (h *WorksheetHandler) GetWorksheetPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	dir, err := os.MkdirTemp("", "mathsheet-*")
	if err != nil {
		h.respondWithServiceError(w, r, fmt.Errorf("failed to create build directory: %w", err))
		return
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("failed to remove build directory", "error", err)
		}
	}()

	result, err := h.worksheetService.Build(r.Context(), req, service.BuildOptions{
		OutputDir: dir,
		Name:      "worksheet",
		Compile:   true,
	})
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	pdf, err := os.ReadFile(result.PDFPath)
	if err != nil {
		h.respondWithServiceError(w, r, fmt.Errorf("failed to read compiled worksheet: %w", err))
		return
	}

	w.Header().Set(SeedHeader, strconv.FormatUint(result.Worksheet.Seed, 10))
	shared.RespondWithContent(w, r, http.StatusOK, ContentTypePDF, "worksheet.pdf", pdf)
}

// parseRequest reads and validates the worksheet query. On failure it writes
// a 400 response and returns false.
func (h *WorksheetHandler) parseRequest(w http.ResponseWriter, r *http.Request) (service.Request, bool) {
	q := r.URL.Query()
	query := WorksheetQuery{
		Operations: shared.QueryList(q, "ops", h.defaults.Operations),
	}

	var err error
	if query.Digits, err = shared.QueryInt(q, "digits", h.defaults.Digits); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return service.Request{}, false
	}
	if query.LimitMultiplication, err = shared.QueryBool(q, "limit_multiplication", h.defaults.LimitMultiplication); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return service.Request{}, false
	}
	if query.Seed, err = shared.QueryUint64(q, "seed", h.defaults.Seed); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return service.Request{}, false
	}

	if err := shared.ValidateRequest(query); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return service.Request{}, false
	}

	return service.Request{
		Digits:              query.Digits,
		Operations:          query.Operations,
		LimitMultiplication: query.LimitMultiplication,
		Seed:                query.Seed,
	}, true
}

func (h *WorksheetHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// worksheetToResponse converts a domain worksheet to its response DTO
func worksheetToResponse(ws *domain.Worksheet) WorksheetResponse {
	ops := make([]string, len(ws.Operations))
	for i, op := range ws.Operations {
		ops[i] = string(op)
	}

	rows := make([][]ProblemResponse, len(ws.Rows))
	for i, row := range ws.Rows {
		rows[i] = make([]ProblemResponse, len(row))
		for j, p := range row {
			pr := ProblemResponse{
				Operand1:  p.Operand1,
				Operand2:  p.Operand2,
				Operation: string(p.Operation),
				Latex:     latex.Problem(ws.Digits, p),
			}
			if answer, ok := p.Answer(); ok {
				pr.Answer = &answer
			}
			rows[i][j] = pr
		}
	}

	return WorksheetResponse{
		ID:                  ws.ID.String(),
		Digits:              ws.Digits,
		Operations:          ops,
		LimitMultiplication: ws.LimitMultiplication,
		Seed:                ws.Seed,
		Rows:                rows,
		CreatedAt:           ws.CreatedAt,
	}
}
