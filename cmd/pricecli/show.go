package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"pricecli/internal/app"
	"pricecli/internal/exporter"
	"pricecli/pkg/contracts/domain"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	*cli
	raw bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a summary of a dataset" }
func (*showCmd) Usage() string {
	return `pricecli show [-raw] [<name>]

  Loads a dataset and displays its row count, date range, close price
  range and total volume.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it for the terminal.")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.withApp(ctx, c.options(), func(a *app.Application) subcommands.ExitStatus {
		name, status := c.datasetName(ctx, a, f.Args())
		if name == "" {
			return status
		}

		summary, err := a.Services.Datasets.Summary(ctx, name)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}

		md := summaryMarkdown(summary)
		if c.raw {
			fmt.Fprint(c.stdout, md)
			return subcommands.ExitSuccess
		}
		if err := printMarkdown(c.stdout, md); err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

// summaryMarkdown renders a dataset summary as a markdown table.
func summaryMarkdown(s domain.DatasetSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if s.Rows == 0 {
		b.WriteString("The dataset has a header but no rows.\n")
		return b.String()
	}

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|:---|---:|\n")
	fmt.Fprintf(&b, "| Rows | %d |\n", s.Rows)
	fmt.Fprintf(&b, "| First date | %s |\n", s.FirstDate)
	fmt.Fprintf(&b, "| Last date | %s |\n", s.LastDate)
	fmt.Fprintf(&b, "| Lowest close | %s |\n", exporter.FormatPrice(s.MinClose))
	fmt.Fprintf(&b, "| Highest close | %s |\n", exporter.FormatPrice(s.MaxClose))
	fmt.Fprintf(&b, "| Total volume | %d |\n", s.TotalVolume)
	return b.String()
}

// printMarkdown renders md for the terminal.
func printMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
