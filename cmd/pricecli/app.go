package main

import (
	"context"
	"fmt"

	"github.com/google/subcommands"

	"pricecli/internal/app"
	"pricecli/internal/middleware"
	"pricecli/internal/prompt"
)

func (c *cli) options() app.Options {
	return app.Options{
		ConfigFile:  c.configFile,
		DatasetsDir: c.datasetsDir,
		Console:     c.stderr,
	}
}

// withApp assembles the application, runs fn and releases telemetry and the
// log file whatever fn returns.
func (c *cli) withApp(ctx context.Context, opts app.Options, fn func(*app.Application) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := app.NewApplication(opts)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			fmt.Fprintln(c.stderr, err)
		}
	}()
	return fn(a)
}

// datasetName returns the single positional argument, or asks for one on
// stdin when there is none. When no dataset should be loaded it returns an
// empty name and the status the command should exit with.
func (c *cli) datasetName(ctx context.Context, a *app.Application, args []string) (string, subcommands.ExitStatus) {
	switch len(args) {
	case 0:
		selection := a.NewSelector(c.stdin, c.stderr).Select(ctx)
		if !selection.Cancelled {
			return selection.Filename, subcommands.ExitSuccess
		}
		fmt.Fprintf(c.stderr, "No dataset selected: %s\n", selection.Reason)
		// The user chose to stop; only running out of attempts is a failure.
		if selection.Reason == prompt.ReasonAttemptsExhausted {
			return "", subcommands.ExitFailure
		}
		return "", subcommands.ExitSuccess
	case 1:
		if err := middleware.NewValidationMiddleware(nil).ValidateName(args[0]); err != nil {
			fmt.Fprintln(c.stderr, err)
			return "", subcommands.ExitUsageError
		}
		return args[0], subcommands.ExitSuccess
	default:
		fmt.Fprintf(c.stderr, "expected at most one dataset name, got %d\n", len(args))
		return "", subcommands.ExitUsageError
	}
}
