package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager writes files into a single output directory
type Manager struct {
	dir    string
	logger *slog.Logger
}

// NewManager creates a new file manager writing under dir
func NewManager(dir string) *Manager {
	return &Manager{dir: dir, logger: slog.Default().With(slog.String("component", "file_manager"))}
}

// WithLogger returns a copy of m that logs through logger.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	cp := *m
	cp.logger = logger.With(slog.String("component", "file_manager"))
	return &cp
}

// Dir returns the output directory.
func (m *Manager) Dir() string {
	return m.dir
}

// EnsureDirectory creates the output directory if it doesn't exist
func (m *Manager) EnsureDirectory() error {
	return os.MkdirAll(m.dir, 0755)
}

// WriteFile streams write's output to name in the output directory and
// returns the full path. Content goes to a temporary file first and is
// renamed into place, so readers never observe a partial file.
func (m *Manager) WriteFile(name string, write func(io.Writer) error) (string, error) {
	if err := m.EnsureDirectory(); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst := filepath.Join(m.dir, filepath.Base(name))
	tmp, err := os.CreateTemp(m.dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	m.logger.Debug("Wrote file", slog.String("path", dst))
	return dst, nil
}

// ListFiles returns all files in the output directory (non-recursive)
func (m *Manager) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
