package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"pricecli/internal/app"
	"pricecli/internal/exporter"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	*cli
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a dataset to the exports directory" }
func (*exportCmd) Usage() string {
	return `pricecli export [-format csv|xlsx] <name>

  Loads a dataset and writes it to the exports directory with prices
  rounded to two decimals. Prints the path of the written file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", exporter.FormatCSV, "Export format: "+strings.Join(exporter.Formats, " or ")+".")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.stderr, "export takes exactly one dataset name")
		return subcommands.ExitUsageError
	}
	if _, err := exporter.ForFormat(c.format); err != nil {
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitUsageError
	}

	return c.withApp(ctx, c.options(), func(a *app.Application) subcommands.ExitStatus {
		name, status := c.datasetName(ctx, a, f.Args())
		if name == "" {
			return status
		}

		path, err := a.Services.Datasets.Export(ctx, name, c.format)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(c.stdout, path)
		return subcommands.ExitSuccess
	})
}
