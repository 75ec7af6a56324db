package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/mathsheet/internal/api"
	apiMiddleware "github.com/phrazzld/mathsheet/internal/api/middleware"
)

// setupRouter creates the HTTP router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	worksheetHandler := api.NewWorksheetHandler(app.worksheetService, app.config.Worksheet, app.logger)

	r.Route("/api/worksheets", func(r chi.Router) {
		r.Get("/", worksheetHandler.GetWorksheet)
		r.Get("/source", worksheetHandler.GetWorksheetSource)
		r.Get("/pdf", worksheetHandler.GetWorksheetPDF)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
