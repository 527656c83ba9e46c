package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecli/internal/shared/testutil"
)

func TestManager_WriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	manager := NewManager(dir)

	path, err := manager.WriteFile("prices.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "Date,Close\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prices.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Close\n", string(content))

	names, err := manager.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"prices.csv"}, names, "no temporary files left behind")
}

func TestManager_WriteFileFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prices.csv"), []byte("old"), 0644))

	writeErr := errors.New("boom")
	_, err := manager.WriteFile("prices.csv", func(w io.Writer) error {
		io.WriteString(w, "partial")
		return writeErr
	})
	assert.ErrorIs(t, err, writeErr)

	content, err := os.ReadFile(filepath.Join(dir, "prices.csv"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	names, err := manager.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"prices.csv"}, names)
}

func TestManager_WriteFileStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := NewManager(dir).WriteFile("../escape.csv", func(w io.Writer) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), path)
}

func TestManager_WithLogger(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	manager := NewManager(t.TempDir()).WithLogger(logger)

	path, err := manager.WriteFile("prices.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "Date\n")
		return err
	})
	require.NoError(t, err)

	assert.True(t, handler.ContainsMessage("Wrote file"))
	assert.True(t, handler.ContainsAttr("component", "file_manager"))
	assert.True(t, handler.ContainsAttr("path", path))
}
