package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"pricecli/internal/app"
	"pricecli/pkg/contracts/domain"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	*cli
	match string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the datasets in the base directory" }
func (*listCmd) Usage() string {
	return `pricecli list [-match <glob>]

  Lists the .csv and .txt files of the dataset directory, sorted by name.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.match, "match", "", "Only list datasets whose name matches this glob pattern, e.g. 'A*.csv'.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(c.stderr, "list takes no arguments")
		return subcommands.ExitUsageError
	}

	return c.withApp(ctx, c.options(), func(a *app.Application) subcommands.ExitStatus {
		var (
			datasets []domain.DatasetFile
			err      error
		)
		if c.match == "" {
			datasets, err = a.Services.Datasets.List(ctx)
		} else {
			datasets, err = a.Discovery.FindByPattern(c.match)
		}
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}

		if len(datasets) == 0 {
			fmt.Fprintf(c.stdout, "No datasets in %s\n", a.Paths.DatasetsDir)
			return subcommands.ExitSuccess
		}

		tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
		for _, d := range datasets {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Name, d.Size, d.ModTime.Format("2006-01-02 15:04"))
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
