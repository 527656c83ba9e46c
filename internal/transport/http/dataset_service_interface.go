package http

import (
	"context"
	"io"

	"pricecli/internal/exporter"
	"pricecli/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset operations the HTTP layer uses
type DatasetServiceInterface interface {
	List(ctx context.Context) ([]domain.DatasetFile, error)
	Columns(ctx context.Context, name string) (domain.Columns, error)
	Summary(ctx context.Context, name string) (domain.DatasetSummary, error)
	ExportTo(ctx context.Context, name string, w exporter.Writer, out io.Writer) error
}
