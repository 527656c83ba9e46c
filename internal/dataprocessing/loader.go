package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pricecli/internal/config"
	apperrors "pricecli/internal/errors"
	"pricecli/internal/files"
	"pricecli/internal/infrastructure"
	"pricecli/pkg/contracts/domain"
)

const tracerName = "pricecli/dataprocessing"

// Option configures a Loader
type Option func(*Loader)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(delimiter rune) Option {
	return func(l *Loader) {
		l.delimiter = delimiter
	}
}

// WithLogger sets the logger used for load events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithTracer sets the tracer used for load spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Loader) {
		l.tracer = tracer
	}
}

// Loader reads dataset files into typed columns. A Loader only holds
// configuration and may be shared between goroutines; every load uses its
// own reader and buffers.
type Loader struct {
	locator   *files.Locator
	delimiter rune
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewLoader creates a loader reading files found by locator.
func NewLoader(locator *files.Locator, opts ...Option) *Loader {
	l := &Loader{
		locator:   locator,
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = infrastructure.GetLogger()
	}
	l.logger = l.logger.With(slog.String("component", "dataset_loader"))
	if l.tracer == nil {
		l.tracer = otel.Tracer(tracerName)
	}
	return l
}

// Load resolves filename, validates its header and converts every record
// into a Dataset. Any failure aborts the whole load and no partial dataset
// is returned. ctx carries trace and log correlation only; a load runs to
// completion once started.
func (l *Loader) Load(ctx context.Context, filename string) (*domain.Dataset, error) {
	ctx, span := l.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("dataset.name", filename)))
	defer span.End()

	start := time.Now()
	ds, err := l.load(ctx, filename)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.logger.WarnContext(ctx, "Dataset load failed",
			slog.String("dataset", filename),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(attribute.Int("dataset.rows", ds.Len()))
	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("dataset", filename),
		slog.Int("rows", ds.Len()),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func (l *Loader) load(ctx context.Context, filename string) (*domain.Dataset, error) {
	path, err := l.locator.Resolve(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		l.logger.WarnContext(ctx, "Cannot open dataset",
			slog.String("dataset", filename),
			slog.String("path", path),
			slog.String("error", err.Error()))
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", filename))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("cannot open dataset %q", filename), err)
	}
	defer f.Close()

	l.logger.DebugContext(ctx, "Reading dataset", slog.String("path", path))
	return l.Read(f)
}

// Read parses delimited text from r. The first record is the header.
func (l *Loader) Read(r io.Reader) (*domain.Dataset, error) {
	if !config.ValidDelimiter(l.delimiter) {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid delimiter %q", l.delimiter), nil).
			WithContext("value", string(l.delimiter))
	}

	reader := csv.NewReader(r)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewSchemaError(domain.RequiredFields, domain.RequiredFields, nil)
	}
	if err != nil {
		return nil, malformed(err)
	}

	idx, err := buildColumnIndex(slices.Clone(header))
	if err != nil {
		return nil, err
	}

	var acc accumulator
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		if len(record) < idx.width {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("record at row %d (line %d) has %d fields, need at least %d", row, line, len(record), idx.width), nil).
				WithContext("row", row).
				WithContext("line", line)
		}

		c := rowCoercer{
			idx:    idx,
			record: record,
			row:    row,
			line: func(col int) int {
				line, _ := reader.FieldPos(col)
				return line
			},
		}
		bar, err := c.bar()
		if err != nil {
			return nil, err
		}
		acc.append(bar)
	}

	ds := acc.dataset()
	if err := ds.CheckAligned(); err != nil {
		return nil, apperrors.NewInternalAppError("dataset columns are misaligned", err)
	}
	return ds, nil
}

// AsMap loads filename and returns its columns keyed by canonical name.
func (l *Loader) AsMap(ctx context.Context, filename string) (domain.Columns, error) {
	ds, err := l.Load(ctx, filename)
	if err != nil {
		return nil, err
	}
	return ds.Columns(), nil
}

// Load reads filename from baseDir with default options.
func Load(ctx context.Context, baseDir, filename string) (*domain.Dataset, error) {
	return NewLoader(files.NewLocator(baseDir)).Load(ctx, filename)
}

// AsMap reads filename from baseDir and returns its keyed columns.
func AsMap(ctx context.Context, baseDir, filename string) (domain.Columns, error) {
	return NewLoader(files.NewLocator(baseDir)).AsMap(ctx, filename)
}

func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return apperrors.NewParsingError(fmt.Sprintf("malformed record at line %d", pe.Line), err).
			WithContext("line", pe.Line)
	}
	return apperrors.NewStorageError("cannot read dataset", err)
}

// accumulator collects coerced rows column by column.
type accumulator struct {
	date                             []civil.Date
	open, high, low, close, adjClose []float32
	volume                           []int32
}

func (a *accumulator) append(bar domain.DailyBar) {
	a.date = append(a.date, bar.Date)
	a.open = append(a.open, bar.Open)
	a.high = append(a.high, bar.High)
	a.low = append(a.low, bar.Low)
	a.close = append(a.close, bar.Close)
	a.adjClose = append(a.adjClose, bar.AdjClose)
	a.volume = append(a.volume, bar.Volume)
}

// dataset returns the columns trimmed to their exact length. A file with
// a header and no rows yields empty, non-nil columns.
func (a *accumulator) dataset() *domain.Dataset {
	return &domain.Dataset{
		Date:     exact(a.date),
		Open:     exact(a.open),
		High:     exact(a.high),
		Low:      exact(a.low),
		Close:    exact(a.close),
		AdjClose: exact(a.adjClose),
		Volume:   exact(a.volume),
	}
}

func exact[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clip(s)
}
