package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "pricecli/internal/errors"
	"pricecli/internal/exporter"
	mw "pricecli/internal/middleware"
)

// DatasetHandler serves dataset listings, typed columns, summaries and
// exports with RFC 7807 errors.
type DatasetHandler struct {
	service      DatasetServiceInterface
	validation   *mw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		validation:   mw.NewValidationMiddleware(errorHandler),
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes, mounted under /api/datasets
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListDatasets)

	r.Route("/{"+mw.DatasetNameParam+"}", func(r chi.Router) {
		r.Use(h.validation.DatasetName)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.GetColumns)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/summary", h.GetSummary)
		r.Get("/export", h.Export)
	})

	return r
}

// ListDatasets handles GET /api/datasets
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   found,
		"count":  len(found),
	})
}

// GetColumns handles GET /api/datasets/{name}
func (h *DatasetHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, mw.DatasetNameParam)

	columns, err := h.service.Columns(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"name":   name,
		"rows":   len(columns.Dates()),
		"data":   columns,
	})
}

// GetSummary handles GET /api/datasets/{name}/summary
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, mw.DatasetNameParam))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// Export handles GET /api/datasets/{name}/export?format=csv|xlsx. The
// document is built in memory first so a failed load still gets a problem
// response instead of a truncated download.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, mw.DatasetNameParam)

	format, ok := h.validation.QueryEnum(w, r, "format", exporter.Formats, exporter.FormatCSV)
	if !ok {
		return
	}
	writer, err := exporter.ForFormat(format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportTo(r.Context(), name, writer, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Serving dataset export",
		slog.String("dataset", name),
		slog.String("format", format),
		slog.Int("bytes", buf.Len()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName(name, writer)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "Export response interrupted", slog.String("error", err.Error()))
	}
}
