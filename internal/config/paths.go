package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved application directories. It is built once at
// startup and not modified afterwards.
type Paths struct {
	ExecutableDir string
	DatasetsDir   string
	ExportsDir    string
	LogsDir       string
}

// GetPaths resolves the dataset configuration against the directory of the
// running executable. Absolute directories are used as given.
func GetPaths(cfg DatasetConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe), cfg), nil
}

// NewPaths resolves the dataset configuration against rootDir.
func NewPaths(rootDir string, cfg DatasetConfig) *Paths {
	return &Paths{
		ExecutableDir: rootDir,
		DatasetsDir:   resolve(rootDir, cfg.BaseDir),
		ExportsDir:    resolve(rootDir, cfg.ExportsDir),
		LogsDir:       filepath.Join(rootDir, DefaultLogsDir),
	}
}

// WithDatasetsDir returns a copy of p reading datasets from dir instead.
func (p *Paths) WithDatasetsDir(dir string) *Paths {
	cp := *p
	cp.DatasetsDir = resolveFromWorkingDir(dir)
	return &cp
}

// Validate rejects layouts where exports would be written into the
// datasets directory and overwrite their own source.
func (p *Paths) Validate() error {
	if SameDir(p.DatasetsDir, p.ExportsDir) {
		return fmt.Errorf("exports_dir %s must differ from the datasets directory", p.ExportsDir)
	}
	return nil
}

// SameDir reports whether a and b name the same directory, following
// symlinks when both exist.
func SameDir(a, b string) bool {
	if filepath.Clean(resolveFromWorkingDir(a)) == filepath.Clean(resolveFromWorkingDir(b)) {
		return true
	}
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ai, bi)
}

// EnsureDirectories creates the directories the application writes to. The
// datasets directory is read-only and never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ExportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetExportPath returns the full path for an export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// ResolveLogFile makes a relative logging file path absolute.
func (p *Paths) ResolveLogFile(cfg LoggingConfig) LoggingConfig {
	cfg.FilePath = resolve(p.ExecutableDir, cfg.FilePath)
	return cfg
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Info("Path resolution",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("datasets_dir", p.DatasetsDir),
		slog.String("exports_dir", p.ExportsDir),
		slog.String("logs_dir", p.LogsDir),
		slog.Bool("datasets_dir_exists", FileExists(p.DatasetsDir)))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func resolveFromWorkingDir(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
