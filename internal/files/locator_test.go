package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pricecli/internal/errors"
	"pricecli/internal/shared/testutil"
)

func TestLocator_Resolve(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, "prices.csv", testutil.TwoDayDataset)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0755))

	locator := NewLocator(dir)

	tests := []struct {
		name     string
		filename string
		wantPath string
		wantType apperrors.ErrorType
	}{
		{name: "existing file", filename: "prices.csv", wantPath: filepath.Join(dir, "prices.csv")},
		{name: "missing file", filename: "missing.csv", wantType: apperrors.ErrTypeNotFound},
		{name: "directory", filename: "archive.csv", wantType: apperrors.ErrTypeNotFound},
		{name: "empty name", filename: "", wantType: apperrors.ErrTypeValidation},
		{name: "blank name", filename: "   ", wantType: apperrors.ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := locator.Resolve(tt.filename)
			if tt.wantType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
				assert.Empty(t, path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestLocator_NotFoundMatchesSentinel(t *testing.T) {
	locator := NewLocator(t.TempDir())
	_, err := locator.Resolve("nope.csv")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), `"nope.csv"`)
}

func TestLocator_Exists(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, "prices.csv", testutil.TwoDayDataset)
	locator := NewLocator(dir)

	assert.True(t, locator.Exists("prices.csv"))
	assert.False(t, locator.Exists("other.csv"))
	assert.False(t, locator.Exists(""))
	assert.Equal(t, dir, locator.BaseDir())
}

func TestLocator_NotFoundKeepsPathInLogs(t *testing.T) {
	dir := t.TempDir()
	logger, handler := testutil.NewTestLogger(t)
	locator := NewLocator(dir).WithLogger(logger)

	_, err := locator.Resolve("missing.csv")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.NotContains(t, appErr.Context, "path")
	assert.NotContains(t, err.Error(), dir)

	assert.True(t, handler.ContainsMessage("Dataset not found"))
	assert.True(t, handler.ContainsAttr("path", filepath.Join(dir, "missing.csv")))
	assert.True(t, handler.ContainsAttr("component", "dataset_locator"))
	assert.Equal(t, dir, locator.BaseDir())
}
