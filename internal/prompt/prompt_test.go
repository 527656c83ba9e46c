package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecli/internal/files"
	"pricecli/internal/shared/testutil"
	"pricecli/pkg/contracts/domain"
)

func setup(t *testing.T, input string, maxAttempts int) (*Selector, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteDataset(t, dir, "msft.csv", testutil.TwoDayDataset)
	testutil.WriteDataset(t, dir, "prices.csv", testutil.TwoDayDataset)

	logger, _ := testutil.NewTestLogger(t)
	var out bytes.Buffer
	s := NewSelector(strings.NewReader(input), &out, files.NewLocator(dir), files.NewDiscovery(dir), maxAttempts, logger)
	return s, &out, dir
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxAtt     int
		wantFile   string
		wantReason string
		wantOutput []string
	}{
		{
			name:       "valid name first try",
			input:      "prices.csv\n",
			maxAtt:     3,
			wantFile:   "prices.csv",
			wantOutput: []string{"1) msft.csv", "2) prices.csv"},
		},
		{
			name:     "listing number",
			input:    "1\n",
			maxAtt:   3,
			wantFile: "msft.csv",
		},
		{
			name:       "retries until valid",
			input:      "nope.csv\n\n  prices.csv  \n",
			maxAtt:     3,
			wantFile:   "prices.csv",
			wantOutput: []string{`Dataset "nope.csv" was not found`, "Please enter a filename.", "1 attempt(s) left."},
		},
		{
			name:       "attempts exhausted",
			input:      "a.csv\nb.csv\nprices.csv\n",
			maxAtt:     2,
			wantReason: ReasonAttemptsExhausted,
		},
		{
			name:       "end of input",
			input:      "missing.csv\n",
			maxAtt:     3,
			wantReason: ReasonEndOfInput,
		},
		{
			name:       "empty input",
			input:      "",
			maxAtt:     3,
			wantReason: ReasonEndOfInput,
		},
		{
			name:       "out of range number is a name",
			input:      "7\n",
			maxAtt:     1,
			wantReason: ReasonAttemptsExhausted,
			wantOutput: []string{`Dataset "7" was not found`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out, dir := setup(t, tt.input, tt.maxAtt)

			sel := s.Select(context.Background())
			if tt.wantReason != "" {
				assert.True(t, sel.Cancelled)
				assert.Equal(t, tt.wantReason, sel.Reason)
				assert.Empty(t, sel.Filename)
			} else {
				assert.False(t, sel.Cancelled)
				assert.Equal(t, tt.wantFile, sel.Filename)
				assert.Equal(t, filepath.Join(dir, tt.wantFile), sel.Path)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestSelect_Interrupted(t *testing.T) {
	dir := t.TempDir()
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := NewSelector(pr, &out, files.NewLocator(dir), nil, 3, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sel := s.Select(ctx)
	assert.True(t, sel.Cancelled)
	assert.Equal(t, ReasonInterrupted, sel.Reason)
}

func TestNewSelector_DefaultAttempts(t *testing.T) {
	s := NewSelector(strings.NewReader(""), io.Discard, files.NewLocator(t.TempDir()), nil, 0, nil)
	assert.Equal(t, DefaultMaxAttempts, s.maxAttempts)

	sel := NewSelector(strings.NewReader("a\nb\nc\nd\n"), io.Discard, files.NewLocator(t.TempDir()), nil, 0, nil).
		Select(context.Background())
	assert.Equal(t, ReasonAttemptsExhausted, sel.Reason)
}

type failingLister struct{}

func (failingLister) FindDatasets() ([]domain.DatasetFile, error) {
	return nil, errors.New("permission denied")
}

func TestSelect_ListingProblems(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	NewSelector(strings.NewReader(""), &out, files.NewLocator(dir), failingLister{}, 1, nil).Select(context.Background())
	assert.Contains(t, out.String(), "Could not list datasets")

	out.Reset()
	NewSelector(strings.NewReader(""), &out, files.NewLocator(dir), files.NewDiscovery(dir), 1, nil).Select(context.Background())
	require.Contains(t, out.String(), "No datasets found")
}
