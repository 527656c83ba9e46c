package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDatasetsDir, cfg.Dataset.BaseDir)
	assert.Equal(t, ",", cfg.Dataset.Delimiter)
	assert.Equal(t, DefaultMaxAttempts, cfg.Dataset.MaxAttempts)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFile_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
dataset:
  base_dir: /srv/prices
  delimiter: ";"
server:
  port: 9090
  read_timeout: 5s
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	t.Setenv("PRICES_SERVER_PORT", "7070")
	t.Setenv("PRICES_DATASET_MAX_ATTEMPTS", "5")

	cfg, err := LoadFile(file)
	require.NoError(t, err)

	assert.Equal(t, "/srv/prices", cfg.Dataset.BaseDir, "file overrides default")
	assert.Equal(t, ";", cfg.Dataset.Delimiter)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7070, cfg.Server.Port, "env overrides file")
	assert.Equal(t, 5, cfg.Dataset.MaxAttempts, "env overrides default")
	assert.Equal(t, DefaultExportsDir, cfg.Dataset.ExportsDir, "untouched default")
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"PRICES_SERVER_PORT": "70000"},
			wantErr: "Port",
		},
		{
			name:    "multi-character delimiter",
			env:     map[string]string{"PRICES_DATASET_DELIMITER": ";;"},
			wantErr: "Delimiter",
		},
		{
			name:    "quote delimiter",
			env:     map[string]string{"PRICES_DATASET_DELIMITER": `"`},
			wantErr: "Delimiter",
		},
		{
			name:    "newline delimiter",
			env:     map[string]string{"PRICES_DATASET_DELIMITER": "\n"},
			wantErr: "Delimiter",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"PRICES_LOGGING_LEVEL": "chatty"},
			wantErr: "Level",
		},
		{
			name:    "zero attempts",
			env:     map[string]string{"PRICES_DATASET_MAX_ATTEMPTS": "0"},
			wantErr: "MaxAttempts",
		},
		{
			name:    "not a number",
			env:     map[string]string{"PRICES_SERVER_PORT": "eighty"},
			wantErr: "env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_ConfigFileEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("dataset:\n  base_dir: from-env-file\n"), 0644))
	t.Setenv(ConfigFileEnv, file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.Dataset.BaseDir)
}

func TestNewPaths(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "shared-datasets")

	paths := NewPaths(root, DatasetConfig{BaseDir: "datasets", ExportsDir: abs})
	assert.Equal(t, filepath.Join(root, "datasets"), paths.DatasetsDir)
	assert.Equal(t, abs, paths.ExportsDir)
	assert.Equal(t, filepath.Join(abs, "out.csv"), paths.GetExportPath("out.csv"))

	logging := paths.ResolveLogFile(LoggingConfig{FilePath: "logs/app.log"})
	assert.Equal(t, filepath.Join(root, "logs", "app.log"), logging.FilePath)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	root := t.TempDir()
	paths := NewPaths(root, DatasetConfig{BaseDir: "datasets", ExportsDir: "exports"})

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.ExportsDir)
	assert.DirExists(t, paths.LogsDir)
	assert.NoDirExists(t, paths.DatasetsDir, "datasets dir is never created")
}

func TestPaths_WithDatasetsDir(t *testing.T) {
	root := t.TempDir()
	paths := NewPaths(root, DatasetConfig{BaseDir: "datasets", ExportsDir: "exports"})
	other := t.TempDir()

	moved := paths.WithDatasetsDir(other)
	assert.Equal(t, other, moved.DatasetsDir)
	assert.Equal(t, filepath.Join(root, "datasets"), paths.DatasetsDir, "original unchanged")
}

func TestValidDelimiter(t *testing.T) {
	for _, r := range []rune{',', ';', '\t', '|'} {
		assert.True(t, ValidDelimiter(r), "%q", r)
	}
	for _, r := range []rune{'"', '\n', '\r', 0, utf8.RuneError} {
		assert.False(t, ValidDelimiter(r), "%q", r)
	}
}

func TestPaths_Validate(t *testing.T) {
	root := t.TempDir()

	paths := NewPaths(root, DatasetConfig{BaseDir: "datasets", ExportsDir: "exports"})
	assert.NoError(t, paths.Validate())

	same := NewPaths(root, DatasetConfig{BaseDir: "datasets", ExportsDir: "./datasets/"})
	err := same.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exports_dir")

	moved := paths.WithDatasetsDir(paths.ExportsDir)
	assert.Error(t, moved.Validate(), "datasets override onto the exports directory")
}

func TestSameDir_Symlink(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	link := filepath.Join(root, "link")
	require.NoError(t, os.Mkdir(target, 0755))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.True(t, SameDir(target, link))
	assert.False(t, SameDir(target, root))
}
