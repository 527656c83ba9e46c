package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "pricecli/internal/errors"
)

// Locator resolves dataset filenames against a fixed base directory.
// It holds no mutable state and is safe for concurrent use.
type Locator struct {
	baseDir string
	logger  *slog.Logger
}

// NewLocator creates a locator rooted at baseDir. It logs through
// slog.Default until WithLogger sets another logger.
func NewLocator(baseDir string) *Locator {
	return &Locator{
		baseDir: baseDir,
		logger:  slog.Default().With(slog.String("component", "dataset_locator")),
	}
}

// WithLogger returns a copy of l that logs through logger.
func (l *Locator) WithLogger(logger *slog.Logger) *Locator {
	return &Locator{
		baseDir: l.baseDir,
		logger:  logger.With(slog.String("component", "dataset_locator")),
	}
}

// BaseDir returns the directory filenames are resolved against.
func (l *Locator) BaseDir() string {
	return l.baseDir
}

// Exists reports whether filename names a regular file in the base directory.
func (l *Locator) Exists(filename string) bool {
	_, err := l.Resolve(filename)
	return err == nil
}

// Resolve returns the full path of filename. It fails with a not-found
// error when nothing (or a directory) exists at that path, and with a
// validation error when filename is empty.
func (l *Locator) Resolve(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", apperrors.NewAppValidationError("dataset filename is empty")
	}

	path := filepath.Join(l.baseDir, filename)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		l.logger.Debug("Dataset not found", slog.String("filename", filename), slog.String("path", path))
		return "", apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", filename))
	case err != nil:
		l.logger.Warn("Cannot stat dataset", slog.String("path", path), slog.String("error", err.Error()))
		return "", apperrors.NewStorageError(fmt.Sprintf("cannot stat dataset %q", filename), err)
	case info.IsDir():
		l.logger.Debug("Dataset path is a directory", slog.String("filename", filename), slog.String("path", path))
		return "", apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", filename)).
			WithContext("reason", "is a directory")
	}
	return path, nil
}
