package files

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"pricecli/internal/config"
	"pricecli/pkg/contracts/domain"
)

// Discovery lists dataset files in a base directory
type Discovery struct {
	basePath   string
	extensions []string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath, extensions: config.DatasetExtensions}
}

// BaseDir returns the directory searched for datasets.
func (d *Discovery) BaseDir() string {
	return d.basePath
}

// FindDatasets returns the delimited files (.csv, .txt) in the base
// directory sorted by name. Subdirectories are not searched.
func (d *Discovery) FindDatasets() ([]domain.DatasetFile, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.basePath, err)
	}

	var files []domain.DatasetFile
	for _, entry := range entries {
		if entry.IsDir() || !d.isDataset(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.DatasetFile{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindByPattern returns the datasets whose name matches a glob pattern.
func (d *Discovery) FindByPattern(pattern string) ([]domain.DatasetFile, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	all, err := d.FindDatasets()
	if err != nil {
		return nil, err
	}

	var matched []domain.DatasetFile
	for _, f := range all {
		if ok, _ := filepath.Match(pattern, f.Name); ok {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// Names returns the file names of files in order.
func Names(files []domain.DatasetFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func (d *Discovery) isDataset(name string) bool {
	return slices.Contains(d.extensions, strings.ToLower(filepath.Ext(name)))
}
