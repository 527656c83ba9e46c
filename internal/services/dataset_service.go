package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pricecli/internal/config"
	"pricecli/internal/dataprocessing"
	apperrors "pricecli/internal/errors"
	"pricecli/internal/exporter"
	"pricecli/internal/files"
	"pricecli/internal/infrastructure"
	"pricecli/pkg/contracts/domain"
)

// DatasetService is the entry point the CLI and HTTP layers use to list,
// load, summarize and export datasets.
type DatasetService struct {
	discovery *files.Discovery
	loader    *dataprocessing.Loader
	exports   *files.Manager
	metrics   *infrastructure.DatasetMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewDatasetService creates a dataset service. metrics may be nil.
func NewDatasetService(discovery *files.Discovery, loader *dataprocessing.Loader, exports *files.Manager, metrics *infrastructure.DatasetMetrics, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		discovery: discovery,
		loader:    loader,
		exports:   exports,
		metrics:   metrics,
		tracer:    otel.Tracer("pricecli/services"),
		logger:    logger.With(slog.String("component", "dataset_service")),
	}
}

// List returns the dataset files available for loading.
func (s *DatasetService) List(ctx context.Context) ([]domain.DatasetFile, error) {
	found, err := s.discovery.FindDatasets()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list datasets", slog.String("error", err.Error()))
		return nil, apperrors.NewStorageError("cannot list datasets", err)
	}
	s.logger.DebugContext(ctx, "Listed datasets", slog.Int("count", len(found)))
	return found, nil
}

// Load loads one dataset and records load metrics.
func (s *DatasetService) Load(ctx context.Context, name string) (*domain.Dataset, error) {
	start := time.Now()
	ds, err := s.loader.Load(ctx, name)
	infrastructure.RecordLoadMetrics(ctx, s.metrics, errorKind(err), time.Since(start), ds.Len())
	return ds, err
}

// Columns loads a dataset and returns it keyed by canonical column name.
func (s *DatasetService) Columns(ctx context.Context, name string) (domain.Columns, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return ds.Columns(), nil
}

// Summary loads a dataset and describes it.
func (s *DatasetService) Summary(ctx context.Context, name string) (domain.DatasetSummary, error) {
	ds, err := s.Load(ctx, name)
	if err != nil {
		return domain.DatasetSummary{}, err
	}
	return domain.Summarize(name, ds), nil
}

// ExportTo loads a dataset and writes it to out using w.
func (s *DatasetService) ExportTo(ctx context.Context, name string, w exporter.Writer, out io.Writer) error {
	ctx, span := s.tracer.Start(ctx, "dataset.export", trace.WithAttributes(
		attribute.String("dataset.name", name),
		attribute.String("export.format", w.Extension())))
	defer span.End()

	ds, err := s.Load(ctx, name)
	if err != nil {
		return err
	}

	err = w.Write(out, ds)
	infrastructure.RecordExportMetrics(ctx, s.metrics, w.Extension(), err == nil)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return apperrors.NewStorageError(fmt.Sprintf("cannot export %s as %s", name, w.Extension()), err)
	}
	return nil
}

// Export writes a dataset to the exports directory in format and returns
// the path of the written file.
func (s *DatasetService) Export(ctx context.Context, name, format string) (string, error) {
	w, err := exporter.ForFormat(format)
	if err != nil {
		return "", err
	}
	if config.SameDir(s.exports.Dir(), s.discovery.BaseDir()) {
		s.logger.ErrorContext(ctx, "Export refused, exports directory holds the datasets",
			slog.String("dataset", name),
			slog.String("exports_dir", s.exports.Dir()))
		return "", apperrors.NewConfigError("exports directory is the datasets directory", nil)
	}

	path, err := s.exports.WriteFile(exporter.FileName(name, w), func(out io.Writer) error {
		return s.ExportTo(ctx, name, w, out)
	})
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "Dataset exported",
		slog.String("dataset", name),
		slog.String("format", w.Extension()),
		slog.String("path", path))
	return path, nil
}

// errorKind labels a failed load for metrics. It is empty on success.
func errorKind(err error) string {
	if err == nil {
		return ""
	}
	if kind := apperrors.TypeOf(err); kind != "" {
		return string(kind)
	}
	return string(apperrors.ErrTypeInternal)
}
