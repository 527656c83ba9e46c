package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"pricecli/internal/app"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	*cli
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve datasets over HTTP" }
func (*serveCmd) Usage() string {
	return `pricecli serve [-port <port>]

  Serves the dataset API until interrupted:

    GET /api/health
    GET /api/datasets
    GET /api/datasets/{name}
    GET /api/datasets/{name}/summary
    GET /api/datasets/{name}/export?format=csv|xlsx
    GET /metrics
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Port to listen on. Defaults to the configured server port.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(c.stderr, "serve takes no arguments")
		return subcommands.ExitUsageError
	}
	if c.port < 0 || c.port > 65535 {
		fmt.Fprintf(c.stderr, "invalid port %d\n", c.port)
		return subcommands.ExitUsageError
	}

	opts := c.options()
	opts.Port = c.port
	return c.withApp(ctx, opts, func(a *app.Application) subcommands.ExitStatus {
		if err := a.Run(ctx); err != nil {
			fmt.Fprintln(c.stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
