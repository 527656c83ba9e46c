// Package prompt asks the user which dataset to load.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	apperrors "pricecli/internal/errors"
	"pricecli/internal/files"
	"pricecli/pkg/contracts/domain"
)

// Cancellation reasons reported in Selection.Reason
const (
	ReasonInterrupted       = "interrupted"
	ReasonEndOfInput        = "end of input"
	ReasonAttemptsExhausted = "no valid dataset after maximum attempts"
)

// DefaultMaxAttempts bounds the retry loop when no limit is configured.
const DefaultMaxAttempts = 3

// Selection is the outcome of a prompt. Exactly one of Filename or
// Cancelled is set.
type Selection struct {
	Filename  string
	Path      string
	Cancelled bool
	Reason    string
}

func cancelled(reason string) Selection {
	return Selection{Cancelled: true, Reason: reason}
}

// Lister lists the datasets offered to the user.
type Lister interface {
	FindDatasets() ([]domain.DatasetFile, error)
}

// Selector runs the interactive filename prompt.
type Selector struct {
	in          io.Reader
	out         io.Writer
	locator     *files.Locator
	lister      Lister
	maxAttempts int
	logger      *slog.Logger
}

// NewSelector creates a selector reading answers from in and writing
// prompts to out. lister may be nil to skip the listing.
func NewSelector(in io.Reader, out io.Writer, locator *files.Locator, lister Lister, maxAttempts int, logger *slog.Logger) *Selector {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		in:          in,
		out:         out,
		locator:     locator,
		lister:      lister,
		maxAttempts: maxAttempts,
		logger:      logger.With(slog.String("component", "prompt")),
	}
}

type line struct {
	text string
	err  error
}

// Select asks for a filename until one exists in the dataset directory.
// The user may also answer with the number shown next to a listed file.
// Cancelling ctx (for example on SIGINT), closing the input or running out
// of attempts yields a cancelled Selection; Select never returns an error.
//
// A cancelled prompt may leave a goroutine blocked reading from in until
// the input is closed.
func (s *Selector) Select(ctx context.Context) Selection {
	listed := s.printListing(ctx)

	lines := make(chan line)
	done := make(chan struct{})
	defer close(done)
	go s.readLines(lines, done)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		fmt.Fprint(s.out, "Enter dataset filename: ")

		var answer string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			s.logger.InfoContext(ctx, "Dataset selection interrupted")
			return cancelled(ReasonInterrupted)
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return cancelled(ReasonEndOfInput)
			}
			if l.err != nil {
				s.logger.WarnContext(ctx, "Failed to read input", slog.String("error", l.err.Error()))
				return cancelled(ReasonEndOfInput)
			}
			answer = strings.TrimSpace(l.text)
		}

		name := s.pick(answer, listed)
		path, err := s.locator.Resolve(name)
		if err == nil {
			s.logger.InfoContext(ctx, "Dataset selected",
				slog.String("dataset", name),
				slog.Int("attempt", attempt))
			return Selection{Filename: name, Path: path}
		}

		s.explain(name, err)
		if left := s.maxAttempts - attempt; left > 0 {
			fmt.Fprintf(s.out, "%d attempt(s) left.\n", left)
		}
	}

	s.logger.InfoContext(ctx, "Dataset selection gave up", slog.Int("attempts", s.maxAttempts))
	return cancelled(ReasonAttemptsExhausted)
}

func (s *Selector) readLines(lines chan<- line, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lines <- line{text: scanner.Text()}:
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case lines <- line{err: err}:
		case <-done:
		}
	}
}

func (s *Selector) printListing(ctx context.Context) []string {
	if s.lister == nil {
		return nil
	}
	found, err := s.lister.FindDatasets()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to list datasets", slog.String("error", err.Error()))
		fmt.Fprintf(s.out, "Could not list datasets in %s\n", s.locator.BaseDir())
		return nil
	}
	if len(found) == 0 {
		fmt.Fprintf(s.out, "No datasets found in %s\n", s.locator.BaseDir())
		return nil
	}

	fmt.Fprintf(s.out, "Datasets in %s:\n", s.locator.BaseDir())
	for i, f := range found {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, f.Name)
	}
	return files.Names(found)
}

// pick maps a listing number to its file name; anything else is a name.
func (s *Selector) pick(answer string, listed []string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(listed) {
		return listed[n-1]
	}
	return answer
}

func (s *Selector) explain(name string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		fmt.Fprintln(s.out, "Please enter a filename.")
	case errors.Is(err, apperrors.ErrNotFound):
		fmt.Fprintf(s.out, "Dataset %q was not found in %s.\n", name, s.locator.BaseDir())
	default:
		fmt.Fprintf(s.out, "Cannot use %q: %v\n", name, err)
	}
}
