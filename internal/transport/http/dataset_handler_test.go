package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "pricecli/internal/errors"
	"pricecli/internal/exporter"
	"pricecli/internal/shared/testutil"
	"pricecli/pkg/contracts/domain"
)

// MockDatasetService is a mock implementation of DatasetServiceInterface
type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) List(ctx context.Context) ([]domain.DatasetFile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DatasetFile), args.Error(1)
}

func (m *MockDatasetService) Columns(ctx context.Context, name string) (domain.Columns, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Columns), args.Error(1)
}

func (m *MockDatasetService) Summary(ctx context.Context, name string) (domain.DatasetSummary, error) {
	args := m.Called(name)
	return args.Get(0).(domain.DatasetSummary), args.Error(1)
}

func (m *MockDatasetService) ExportTo(ctx context.Context, name string, w exporter.Writer, out io.Writer) error {
	args := m.Called(name, w.Extension(), out)
	return args.Error(0)
}

func twoDays() *domain.Dataset {
	return &domain.Dataset{
		Date:     []civil.Date{{Year: 2024, Month: time.January, Day: 2}, {Year: 2024, Month: time.January, Day: 3}},
		Open:     []float32{100.0, 101.0},
		High:     []float32{101.5, 102.0},
		Low:      []float32{99.0, 100.2},
		Close:    []float32{100.8, 101.7},
		AdjClose: []float32{100.8, 101.7},
		Volume:   []int32{1200000, 950000},
	}
}

func newTestRouter(t *testing.T, service DatasetServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)

	r := chi.NewRouter()
	r.Mount("/api/datasets", NewDatasetHandler(service, logger, errorHandler).Routes())
	return r
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestDatasetHandler_ListDatasets(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockDatasetService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "lists datasets",
			setupMock: func(m *MockDatasetService) {
				m.On("List").Return([]domain.DatasetFile{{Name: "AAPL.csv", Size: 120}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":1`,
		},
		{
			name: "empty directory",
			setupMock: func(m *MockDatasetService) {
				m.On("List").Return([]domain.DatasetFile{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name: "storage failure",
			setupMock: func(m *MockDatasetService) {
				m.On("List").Return(nil, storageFailure())
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"Internal Server Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDatasetService)
			tt.setupMock(svc)

			rec := serve(t, newTestRouter(t, svc), "/api/datasets")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func storageFailure() error {
	return apierrors.NewStorageError("cannot list datasets", errors.New("permission denied"))
}

func TestDatasetHandler_GetColumns(t *testing.T) {
	svc := new(MockDatasetService)
	svc.On("Columns", "AAPL.csv").Return(twoDays().Columns(), nil)

	rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "AAPL.csv", body["name"])
	assert.Equal(t, float64(2), body["rows"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data, len(domain.ColumnKeys))
	assert.Equal(t, []any{"2024-01-02", "2024-01-03"}, data[domain.KeyDate])
	assert.Equal(t, []any{float64(1200000), float64(950000)}, data[domain.KeyVolume])
	assert.Equal(t, []any{100.8, 101.7}, data[domain.KeyClosePrice])
	svc.AssertExpectations(t)
}

func TestDatasetHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedType string
	}{
		{
			name:         "not found",
			err:          apierrors.NewNotFoundError("dataset AAPL.csv"),
			expectedCode: http.StatusNotFound,
			expectedType: apierrors.TypeDatasetNotFound,
		},
		{
			name:         "schema mismatch",
			err:          apierrors.NewSchemaError(domain.RequiredFields, []string{"Adj Close"}, []string{"Date"}),
			expectedCode: http.StatusUnprocessableEntity,
			expectedType: apierrors.TypeSchemaMismatch,
		},
		{
			name:         "coercion",
			err:          apierrors.NewCoercionError("Volume", 0, 2, "lots", errors.New("invalid syntax")),
			expectedCode: http.StatusUnprocessableEntity,
			expectedType: apierrors.TypeCoercionFailed,
		},
		{
			name:         "malformed",
			err:          apierrors.NewParsingError("bare quote", nil),
			expectedCode: http.StatusUnprocessableEntity,
			expectedType: apierrors.TypeDatasetMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDatasetService)
			svc.On("Columns", "AAPL.csv").Return(nil, tt.err)

			rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv")

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectedType, decodeBody(t, rec)["type"])
		})
	}
}

func TestDatasetHandler_InvalidNameNeverReachesService(t *testing.T) {
	svc := new(MockDatasetService)

	for _, target := range []string{
		"/api/datasets/AAPL.json",
		"/api/datasets/..%2Fetc.csv",
		"/api/datasets/AAPL.exe/summary",
	} {
		rec := serve(t, newTestRouter(t, svc), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	svc.AssertNotCalled(t, "Columns", mock.Anything)
	svc.AssertNotCalled(t, "Summary", mock.Anything)
}

func TestDatasetHandler_GetSummary(t *testing.T) {
	svc := new(MockDatasetService)
	svc.On("Summary", "AAPL.csv").Return(domain.Summarize("AAPL.csv", twoDays()), nil)

	rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["rows"])
	assert.Equal(t, "2024-01-02", data["first_date"])
	assert.Equal(t, "2024-01-03", data["last_date"])
	assert.Equal(t, float64(2150000), data["total_volume"])
}

func TestDatasetHandler_Export(t *testing.T) {
	tests := []struct {
		name                string
		query               string
		extension           string
		expectedType        string
		expectedDisposition string
	}{
		{
			name:                "default csv",
			query:               "",
			extension:           "csv",
			expectedType:        exporter.NewCSVWriter().ContentType(),
			expectedDisposition: `attachment; filename="AAPL.csv"`,
		},
		{
			name:                "xlsx",
			query:               "?format=xlsx",
			extension:           "xlsx",
			expectedType:        exporter.NewXLSXWriter().ContentType(),
			expectedDisposition: `attachment; filename="AAPL.xlsx"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDatasetService)
			svc.On("ExportTo", "AAPL.csv", tt.extension, mock.Anything).
				Run(func(args mock.Arguments) {
					_, _ = io.WriteString(args.Get(2).(io.Writer), "payload")
				}).
				Return(nil)

			rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv/export"+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expectedType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedDisposition, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "7", rec.Header().Get("Content-Length"))
			assert.Equal(t, "payload", rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestDatasetHandler_ExportFailures(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		svc := new(MockDatasetService)
		rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv/export?format=pdf")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ExportTo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("load failure leaves no attachment", func(t *testing.T) {
		svc := new(MockDatasetService)
		svc.On("ExportTo", "AAPL.csv", "csv", mock.Anything).
			Return(apierrors.NewNotFoundError("dataset AAPL.csv"))

		rec := serve(t, newTestRouter(t, svc), "/api/datasets/AAPL.csv/export")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})
}
