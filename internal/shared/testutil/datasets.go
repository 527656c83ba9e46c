package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StandardHeader is the header of a well-formed dataset file.
const StandardHeader = "Date,Open,High,Low,Close,Adj Close,Volume"

// TwoDayDataset is a small valid dataset used across packages.
const TwoDayDataset = StandardHeader + "\n" +
	"2024-01-02,100.0,101.5,99.0,100.8,100.8,1200000\n" +
	"2024-01-03,100.8,102.0,100.1,101.9,101.9,1500000\n"

// WriteDataset writes content to name inside dir and returns the full path.
func WriteDataset(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create dataset dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset %s: %v", name, err)
	}
	return path
}

// DatasetLines joins a header and rows into file content.
func DatasetLines(header string, rows ...string) string {
	return strings.Join(append([]string{header}, rows...), "\n") + "\n"
}
