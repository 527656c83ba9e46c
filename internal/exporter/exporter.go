package exporter

import (
	"fmt"
	"io"
	"strings"

	apperrors "pricecli/internal/errors"
	"pricecli/pkg/contracts/domain"
)

// Supported export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatXLSX}

// Writer serializes a dataset in one file format.
type Writer interface {
	Write(w io.Writer, ds *domain.Dataset) error
	ContentType() string
	Extension() string
}

// ForFormat returns the writer for a format name. Names are case-insensitive.
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return NewCSVWriter(), nil
	case FormatXLSX:
		return NewXLSXWriter(), nil
	default:
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported export format %q; supported formats are %s", format, strings.Join(Formats, ", "))).
			WithContext("format", format)
	}
}

// FileName returns the export file name for dataset in format, e.g.
// "AAPL.csv" exported as xlsx becomes "AAPL.xlsx".
func FileName(dataset string, w Writer) string {
	base := dataset
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "." + w.Extension()
}

// sourceHeader is the header written by tabular exports. It matches the
// fields the loader requires, so exported CSV files load again unchanged.
func sourceHeader() []string {
	return append([]string(nil), domain.RequiredFields...)
}
