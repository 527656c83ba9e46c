// Command pricecli loads daily price datasets into typed columns and serves
// them over a small HTTP API.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"pricecli/internal/config"
)

// cli carries the global flags and standard streams shared by subcommands.
type cli struct {
	configFile  string
	datasetsDir string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newCommander(c *cli, fs *flag.FlagSet) *subcommands.Commander {
	fs.StringVar(&c.configFile, "config", "", "YAML configuration file (default: "+config.ConfigFileEnv+" or ./config.yaml)")
	fs.StringVar(&c.datasetsDir, "datasets", "", "dataset directory, overriding the configured base_dir")

	commander := subcommands.NewCommander(fs, config.AppName)
	commander.Output = c.stdout
	commander.Error = c.stderr

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&listCmd{cli: c}, "datasets")
	commander.Register(&loadCmd{cli: c}, "datasets")
	commander.Register(&showCmd{cli: c}, "datasets")
	commander.Register(&exportCmd{cli: c}, "datasets")
	commander.Register(&serveCmd{cli: c}, "server")
	commander.Register(&versionCmd{cli: c}, "")

	return commander
}

// run parses args and executes the selected subcommand.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	commander := newCommander(c, fs)
	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	return int(commander.Execute(ctx))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
