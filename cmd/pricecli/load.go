package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"pricecli/internal/app"
	"pricecli/internal/exporter"
	"pricecli/pkg/contracts/domain"
)

// loadCmd holds the flags for the 'load' subcommand.
type loadCmd struct {
	*cli
	head   int
	asJSON bool
}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load a dataset into typed columns" }
func (*loadCmd) Usage() string {
	return `pricecli load [-head <n>] [-json] [<name>]

  Loads a dataset and reports how many trading days it holds.
  Without <name>, lists the datasets and asks which one to load.
`
}

func (c *loadCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Print the first n rows of the loaded dataset.")
	f.BoolVar(&c.asJSON, "json", false, "Print the columns as JSON instead of a row count.")
}

func (c *loadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head < 0 {
		fmt.Fprintln(c.stderr, "-head must not be negative")
		return subcommands.ExitUsageError
	}

	return c.withApp(ctx, c.options(), func(a *app.Application) subcommands.ExitStatus {
		name, status := c.datasetName(ctx, a, f.Args())
		if name == "" {
			return status
		}

		ds, err := a.Services.Datasets.Load(ctx, name)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}

		if c.asJSON {
			enc := json.NewEncoder(c.stdout)
			if err := enc.Encode(ds.Columns()); err != nil {
				fmt.Fprintln(c.stderr, err)
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		}

		fmt.Fprintf(c.stdout, "Loaded %s: %d rows\n", name, ds.Len())
		if c.head > 0 {
			if err := printHead(c.cli, ds, c.head); err != nil {
				fmt.Fprintln(c.stderr, err)
				return subcommands.ExitFailure
			}
		}
		return subcommands.ExitSuccess
	})
}

// printHead writes the first n rows in source column order.
func printHead(c *cli, ds *domain.Dataset, n int) error {
	n = min(n, ds.Len())
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, field := range domain.RequiredFields {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, field)
	}
	fmt.Fprintln(tw, "\t")

	for i := 0; i < n; i++ {
		bar := ds.Bar(i)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			exporter.FormatDate(bar.Date),
			exporter.FormatPrice(bar.Open),
			exporter.FormatPrice(bar.High),
			exporter.FormatPrice(bar.Low),
			exporter.FormatPrice(bar.Close),
			exporter.FormatPrice(bar.AdjClose),
			exporter.FormatVolume(bar.Volume))
	}
	return tw.Flush()
}
